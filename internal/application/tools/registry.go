package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/inventario-chatbot/internal/application/dto"
	"github.com/jhoicas/inventario-chatbot/pkg/logger"
)

// Handler ejecuta una herramienta con sus argumentos JSON crudos. Nunca falla: todo error
// se devuelve como texto con marcador.
type Handler func(ctx context.Context, args json.RawMessage) string

// Tool entrada de la tabla de operaciones con nombre.
type Tool struct {
	Name        string
	Description string
	Parameters  map[string]any // JSON Schema del objeto de argumentos
	Handler     Handler
}

// Toolbox contrato que consume el despachador del agente externo: elige una herramienta por
// nombre y descripción, y la invoca con argumentos JSON.
type Toolbox interface {
	Definitions() []dto.ToolDefinition
	Has(name string) bool
	Invoke(ctx context.Context, name string, args json.RawMessage) string
}

var _ Toolbox = (*Registry)(nil)

const instrumentationName = "github.com/jhoicas/inventario-chatbot/tools"

// Registry tabla de herramientas en orden de registro.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
	order []string

	log         *logger.Logger
	tracer      trace.Tracer
	invocations metric.Int64Counter
	latency     metric.Float64Histogram
}

// Option configura el registro.
type Option func(*registryOptions)

type registryOptions struct {
	tp trace.TracerProvider
	mp metric.MeterProvider
}

// WithTracerProvider usa tp en lugar del proveedor global.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *registryOptions) { o.tp = tp }
}

// WithMeterProvider usa mp en lugar del proveedor global.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *registryOptions) { o.mp = mp }
}

// NewRegistry construye una tabla vacía.
func NewRegistry(log *logger.Logger, opts ...Option) *Registry {
	o := registryOptions{tp: otel.GetTracerProvider(), mp: otel.GetMeterProvider()}
	for _, opt := range opts {
		opt(&o)
	}
	r := &Registry{
		tools:  map[string]Tool{},
		log:    log.Named("tools"),
		tracer: o.tp.Tracer(instrumentationName),
	}

	meter := o.mp.Meter(instrumentationName)
	var err error
	if r.invocations, err = meter.Int64Counter("tool.invocations",
		metric.WithDescription("Invocaciones de herramientas por nombre y resultado")); err != nil {
		r.log.Warn().Err(err).Msg("crear contador tool.invocations")
	}
	if r.latency, err = meter.Float64Histogram("tool.duration",
		metric.WithDescription("Duración de cada invocación"), metric.WithUnit("ms")); err != nil {
		r.log.Warn().Err(err).Msg("crear histograma tool.duration")
	}
	return r
}

// Register agrega una herramienta. El nombre debe ser único.
func (r *Registry) Register(t Tool) error {
	if t.Name == "" || t.Handler == nil {
		return errors.New("herramienta sin nombre o sin handler")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tools[t.Name]; ok {
		return fmt.Errorf("herramienta duplicada: %s", t.Name)
	}
	r.tools[t.Name] = t
	r.order = append(r.order, t.Name)
	return nil
}

// MustRegister registra varias herramientas y entra en pánico ante un error de configuración.
func (r *Registry) MustRegister(tools ...Tool) {
	for _, t := range tools {
		if err := r.Register(t); err != nil {
			panic(err)
		}
	}
}

// Definitions devuelve la tabla en orden de registro.
func (r *Registry) Definitions() []dto.ToolDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]dto.ToolDefinition, 0, len(r.order))
	for _, name := range r.order {
		t := r.tools[name]
		out = append(out, dto.ToolDefinition{Name: t.Name, Description: t.Description, Parameters: t.Parameters})
	}
	return out
}

// Has indica si existe una herramienta con ese nombre.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.tools[name]
	return ok
}

// Invoke ejecuta la herramienta name. Un nombre desconocido devuelve UNKNOWN_TOOL.
func (r *Registry) Invoke(ctx context.Context, name string, args json.RawMessage) string {
	ctx, span := r.tracer.Start(ctx, "tool."+name, trace.WithAttributes(attribute.String("tool.name", name)))
	defer span.End()
	start := time.Now()

	r.mu.RLock()
	t, ok := r.tools[name]
	r.mu.RUnlock()

	var result string
	if ok {
		result = t.Handler(ctx, args)
	} else {
		result = unknownTool(name)
	}

	elapsed := time.Since(start)
	outcome := Outcome(result)
	span.SetAttributes(attribute.String("tool.outcome", outcome))
	attrs := metric.WithAttributes(attribute.String("tool.name", name), attribute.String("tool.outcome", outcome))
	if r.invocations != nil {
		r.invocations.Add(ctx, 1, attrs)
	}
	if r.latency != nil {
		r.latency.Record(ctx, float64(elapsed)/float64(time.Millisecond), attrs)
	}

	ev := r.log.Info()
	if outcome == SentinelStorageFailure {
		span.SetStatus(codes.Error, result)
		ev = r.log.Error()
	}
	ev.Str("tool", name).
		Str("outcome", outcome).
		Dur("duration", elapsed).
		Msg("herramienta invocada")
	return result
}

// NewValidator validador de argumentos que reporta los campos por su nombre JSON.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Bind adapta una función tipada a Handler: decodifica el JSON en T, valida las etiquetas
// `validate` y solo entonces llama a fn. Argumentos vacíos o null equivalen a {}.
func Bind[T any](v *validator.Validate, fn func(ctx context.Context, args T) string) Handler {
	return func(ctx context.Context, raw json.RawMessage) string {
		var args T
		if trimmed := bytes.TrimSpace(raw); len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null")) {
			if err := json.Unmarshal(trimmed, &args); err != nil {
				return invalidInput("argumentos JSON inválidos: " + err.Error())
			}
		}
		if err := v.Struct(args); err != nil {
			return invalidInput(describeValidation(err))
		}
		return fn(ctx, args)
	}
}

func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s no cumple %s=%s", fe.Field(), fe.Tag(), fe.Param()))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s no cumple %s", fe.Field(), fe.Tag()))
	}
	return "argumentos inválidos: " + strings.Join(parts, "; ")
}
