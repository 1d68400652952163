package output

import "askai-shortcut/internal/domain/entity"

type MetricsPort interface {
	RecordFill(outcome entity.FillOutcome)
	RecordAck(status entity.AckStatus)
}
