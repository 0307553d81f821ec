package usecase

import "github.com/riskibarqy/matchday/internal/platform/tracing"

var startUsecaseSpan = tracing.New("matchday/internal/usecase").Start
