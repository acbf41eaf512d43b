package brokermessage

import (
	domain "filestore-api/internal/domain/brokermessage"
)

func fromDBModel(model *BrokerMessage) *domain.BrokerMessage {
	return &domain.BrokerMessage{
		ID:        model.ID,
		Direction: model.Direction,
		App:       model.App,
		Key:       model.Key,
		Body:      model.Body,

		HasExecuted:         model.HasExecuted,
		HasExecutionStopped: model.HasExecutionStopped,
		CountOfRetries:      model.CountOfRetries,
		NextRetryAt:         model.NextRetryAt,
		SecondsToNextRetry:  model.SecondsToNextRetry,

		Created: model.Created,
		Updated: model.Updated,
	}
}

func fromDBModels(models *BrokerMessages) domain.BrokerMessages {
	ms := make(domain.BrokerMessages, len(*models))
	for idx, m := range *models {
		ms[idx] = fromDBModel(m)
	}

	return ms
}
