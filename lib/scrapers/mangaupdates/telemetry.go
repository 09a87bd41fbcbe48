package mangaupdates

import (
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("muscraper.lib.scrapers.mangaupdates")
