package inventory

import "go.opentelemetry.io/otel"

var tracer = otel.Tracer("github.com/jhoicas/Almacen-api/internal/application/inventory")
