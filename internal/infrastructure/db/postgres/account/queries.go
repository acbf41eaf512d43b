package account

const (
	SelectAccountByID = `
		SELECT id, name, auth_token, is_active, actual_size, total_size, tags
		FROM accounts
		WHERE id = $1
	`
	SelectAccountByName = `
		SELECT id, name, auth_token, is_active, actual_size, total_size, tags
		FROM accounts
		WHERE name = $1
	`
	SelectAccountByToken = `
		SELECT id, name, auth_token, is_active, actual_size, total_size, tags
		FROM accounts
		WHERE auth_token = $1
	`
	SelectAccounts = `
		SELECT id, name, auth_token, is_active, actual_size, total_size, tags
		FROM accounts
		ORDER BY name
	`
	UpdateAccountActualSize = `
		UPDATE accounts
		SET actual_size = $2
		WHERE name = $1
	`
	ResetAccountActualSizes = `
		UPDATE accounts
		SET actual_size = 0
		WHERE NOT (name = ANY($1::text[]))
	`
)
