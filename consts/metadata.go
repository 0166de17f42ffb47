package consts

// GinContextKey gin context key
const GinContextKey = "gin-context"

// TraceKey trace id header
const TraceKey string = "X-Trace-ID"

// AcceptLanguageKey request language header
const AcceptLanguageKey string = "Accept-Language"

// LocationKey created resource location header
const LocationKey string = "Location"

// TotalKey result total with response
const TotalKey string = "X-Total-Count"
