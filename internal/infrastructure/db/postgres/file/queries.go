package file

const fileColumns = `id, stored_id, name, size, tag, account_name, created, has_stored, stored, has_deleted, deleted, has_erased, erased`

const (
	InsertFile = `
		INSERT INTO files (` + fileColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	SelectStoredFileByID = `
		SELECT ` + fileColumns + `
		FROM files
		WHERE id = $1 AND has_stored = TRUE AND has_deleted = FALSE
	`
	SelectNotStoredFileByID = `
		SELECT ` + fileColumns + `
		FROM files
		WHERE id = $1 AND has_stored = FALSE
	`
	SelectDeletedFileByID = `
		SELECT ` + fileColumns + `
		FROM files
		WHERE id = $1 AND has_deleted = TRUE AND has_erased = FALSE
	`
	SelectFileExists = `
		SELECT EXISTS (SELECT 1 FROM files WHERE id = $1)
	`
	SelectFileStoredID = `
		SELECT stored_id FROM files WHERE id = $1
	`
	MarkFileAsStored = `
		UPDATE files
		SET name = $2, size = $3, has_stored = TRUE, stored = $4
		WHERE id = $1 AND has_stored = FALSE
		RETURNING ` + fileColumns + `
	`
	SoftDeleteFile = `
		UPDATE files
		SET has_deleted = TRUE, deleted = $3
		WHERE account_name = $1 AND id = $2 AND has_stored = TRUE AND has_deleted = FALSE
		RETURNING ` + fileColumns + `
	`
	MarkFileAsErased = `
		UPDATE files
		SET has_erased = TRUE, erased = $2
		WHERE id = $1 AND has_deleted = TRUE AND has_erased = FALSE
	`
	SelectStoredNotDeletedFiles = `
		SELECT ` + fileColumns + `
		FROM files
		WHERE has_stored = TRUE AND has_deleted = FALSE
		ORDER BY created
		LIMIT $1 OFFSET $2
	`
	SelectDeletedNotErasedFiles = `
		SELECT ` + fileColumns + `
		FROM files
		WHERE has_deleted = TRUE AND has_erased = FALSE AND deleted < $1
		ORDER BY deleted
		LIMIT $2
	`
	SelectAccountUsage = `
		SELECT account_name, COALESCE(SUM(size), 0)
		FROM files
		WHERE has_stored = TRUE AND has_deleted = FALSE
		GROUP BY account_name
	`
)
