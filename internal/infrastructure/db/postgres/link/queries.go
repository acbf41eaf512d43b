package link

const (
	InsertLink = `
		INSERT INTO links (id, file_id, type, created, expired)
		VALUES ($1, $2, $3, $4, $5)
	`
	SelectLinkByIDAndType = `
		SELECT id, file_id, type, created, expired
		FROM links
		WHERE id = $1 AND type = $2 AND expired > $3
	`
	DeleteLink = `
		DELETE FROM links WHERE id = $1
	`
	DeleteLinksByFileID = `
		DELETE FROM links WHERE file_id = $1
	`
	DeleteExpiredLinks = `
		DELETE FROM links WHERE expired <= $1
	`
)
