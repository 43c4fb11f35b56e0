package cleaner

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Clean auto-rejects booking requests whose move-in date has already
// passed without a landlord decision, and drops expired password reset
// hashes. Runs on a cron schedule.
func Clean(pool *pgxpool.Pool) {
	_, err := pool.Exec(context.Background(),
		"UPDATE booking SET status = 'rejected' WHERE status = 'pending' AND move_in_date < NOW()")
	if err != nil {
		log.Printf("ERROR|cleaner.Clean:%s", err.Error())
	}
	_, err = pool.Exec(context.Background(),
		`UPDATE users SET reset_hash = '', reset_hash_created_at = NULL, reset_hash_attempts = 0
		WHERE reset_hash != '' AND reset_hash_created_at < NOW() - INTERVAL '24 HOURS'`)
	if err != nil {
		log.Printf("ERROR|cleaner.Clean:%s", err.Error())
	}
}
