package web

import "github.com/riskibarqy/matchday/internal/platform/tracing"

var startSpan = tracing.New("matchday/internal/interfaces/web").Start
