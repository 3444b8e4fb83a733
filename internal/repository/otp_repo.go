package repository

import (
	"context"
	"errors"
	"strconv"
	"time"

	redis "github.com/redis/go-redis/v9"
)

var (
	ErrOTPNotFound = errors.New("otp not found or expired")
	ErrOTPMismatch = errors.New("otp mismatch")
)

// OTPRepository keeps pending email verification codes in Redis so they
// expire on their own and survive app restarts.
type OTPRepository struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewOTPRepository(rdb *redis.Client, ttl time.Duration) *OTPRepository {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &OTPRepository{rdb: rdb, ttl: ttl}
}

func otpKey(userID int64) string {
	return "otp:" + strconv.FormatInt(userID, 10)
}

func (r *OTPRepository) Store(ctx context.Context, userID int64, code string) error {
	return r.rdb.Set(ctx, otpKey(userID), code, r.ttl).Err()
}

// Verify checks the code and deletes it on success. GETDEL keeps the
// check-and-consume atomic: a code can be used at most once.
func (r *OTPRepository) Verify(ctx context.Context, userID int64, code string) error {
	stored, err := r.rdb.GetDel(ctx, otpKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrOTPNotFound
		}
		return err
	}
	if stored != code {
		// consumed even on mismatch; the user must request a fresh code
		return ErrOTPMismatch
	}
	return nil
}

// TTL reports how long the pending code for a user is still valid.
func (r *OTPRepository) TTL(ctx context.Context, userID int64) (time.Duration, error) {
	d, err := r.rdb.TTL(ctx, otpKey(userID)).Result()
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, ErrOTPNotFound
	}
	return d, nil
}
