package transit

// Package transit fetches the station board from transport.opendata.ch and
// decodes it into model departures. Every failure is reported as a *FetchError
// carrying a Kind, so callers can fold it into the board status without
// losing the cause.
