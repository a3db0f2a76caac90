package store

// User lookups are static statements. The $N placeholders bind positionally
// on both supported drivers, so no dialect indirection is needed here.
const (
	findUserByEmail = `SELECT user_id, email, password_hash, role, created_at
    FROM users
    WHERE email = $1;`

	findUserByID = `SELECT user_id, email, password_hash, role, created_at
    FROM users
    WHERE user_id = $1;`
)
