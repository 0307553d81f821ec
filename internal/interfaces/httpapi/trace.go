package httpapi

import "github.com/riskibarqy/matchday/internal/platform/tracing"

// Only handler entry points get spans; middleware and response helpers ride
// on the request span.
var startSpan = tracing.New("matchday/internal/interfaces/httpapi").WithPrefix("httpapi.Handler.").Start
