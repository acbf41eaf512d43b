package brokermessage

const messageColumns = `id, direction, app, "key", body, has_executed, has_execution_stopped, count_of_retries, next_retry_at, seconds_to_next_retry, created, updated`

const (
	InsertBrokerMessage = `
		INSERT INTO broker_messages (` + messageColumns + `)
		VALUES ($1, $2, $3, $4, $5::jsonb, $6, $7, $8, $9, $10, $11, $12)
	`
	// Incoming rows are keyed by the broker-assigned id; redelivery of a
	// known id must be a silent no-op.
	InsertBrokerMessageIfAbsent = InsertBrokerMessage + `
		ON CONFLICT (id) DO NOTHING
	`
	SelectBrokerMessageByID = `
		SELECT ` + messageColumns + `
		FROM broker_messages
		WHERE id = $1
	`
	// SKIP LOCKED keeps concurrent pollers from claiming the same rows.
	SelectNotExecutedBrokerMessages = `
		SELECT ` + messageColumns + `
		FROM broker_messages
		WHERE
			direction = $1 AND
			has_executed = FALSE AND
			has_execution_stopped = FALSE AND
			next_retry_at < $2
		ORDER BY next_retry_at
		LIMIT $3
		FOR UPDATE SKIP LOCKED
	`
	MarkBrokerMessagesExecuted = `
		UPDATE broker_messages
		SET updated = $2, has_executed = TRUE
		WHERE id = ANY($1::uuid[])
	`
	// The retry delay is taken from before the doubling, so the n-th
	// failure reschedules by 2^(n-1) seconds and leaves the step at 2^n.
	ScheduleBrokerMessagesRetry = `
		UPDATE broker_messages
		SET
			updated = $2,
			count_of_retries = count_of_retries + 1,
			next_retry_at = $2 + make_interval(secs => seconds_to_next_retry),
			seconds_to_next_retry = LEAST(seconds_to_next_retry * 2, $3)
		WHERE id = ANY($1::uuid[])
	`
	StopBrokerMessagesRetry = `
		UPDATE broker_messages
		SET updated = $3, has_execution_stopped = TRUE
		WHERE id = ANY($1::uuid[]) AND count_of_retries >= $2
	`
	DeleteExecutedBrokerMessages = `
		DELETE FROM broker_messages
		WHERE has_executed = TRUE AND updated < $1
	`
)
