package logging

import (
	"context"
	"testing"

	"github.com/goliatone/go-dynamic-embed/pkg/interfaces"
)

type recordingLogger struct {
	fields   []map[string]any
	contexts []context.Context
}

func (r *recordingLogger) Trace(string, ...any) {}
func (r *recordingLogger) Debug(string, ...any) {}
func (r *recordingLogger) Info(string, ...any)  {}
func (r *recordingLogger) Warn(string, ...any)  {}
func (r *recordingLogger) Error(string, ...any) {}
func (r *recordingLogger) Fatal(string, ...any) {}

func (r *recordingLogger) WithFields(fields map[string]any) interfaces.Logger {
	if fields == nil {
		fields = map[string]any{}
	}
	copied := make(map[string]any, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	r.fields = append(r.fields, copied)
	return r
}

func (r *recordingLogger) WithContext(ctx context.Context) interfaces.Logger {
	r.contexts = append(r.contexts, ctx)
	return r
}

type stubProvider struct {
	requested []string
	logger    interfaces.Logger
}

func (s *stubProvider) GetLogger(name string) interfaces.Logger {
	s.requested = append(s.requested, name)
	return s.logger
}

func TestModuleLoggerFallsBackToNoOp(t *testing.T) {
	logger := ModuleLogger(nil, "embed.test")
	if _, ok := logger.(noopLogger); !ok {
		t.Fatalf("expected noopLogger fallback, got %T", logger)
	}
	ctx := context.Background()
	logger = logger.WithContext(ctx)
	logger = logger.WithFields(map[string]any{"foo": "bar"})
	logger.Debug("noop")
}

func TestModuleLoggerUsesProviderAndAnnotatesFields(t *testing.T) {
	rec := &recordingLogger{}
	provider := &stubProvider{logger: rec}

	logger := ModuleLogger(provider, processorModule)

	if len(provider.requested) != 1 || provider.requested[0] != processorModule {
		t.Fatalf("expected module %s, got %v", processorModule, provider.requested)
	}
	if len(rec.fields) != 1 {
		t.Fatalf("expected module fields to be applied once, got %d", len(rec.fields))
	}
	if got, ok := rec.fields[0]["module"]; !ok || got != processorModule {
		t.Fatalf("expected module field %s, got %v", processorModule, rec.fields[0]["module"])
	}

	logger.Info("with provider")
}

func TestModuleLoggerDefaultsToRootModule(t *testing.T) {
	rec := &recordingLogger{}
	provider := &stubProvider{logger: rec}

	_ = ModuleLogger(provider, "")

	if len(provider.requested) != 1 || provider.requested[0] != rootModule {
		t.Fatalf("expected default module %s, got %v", rootModule, provider.requested)
	}
	if rec.fields[0]["module"] != rootModule {
		t.Fatalf("expected module field %s, got %v", rootModule, rec.fields[0]["module"])
	}
}

func TestNamespacedLoggersRequestTheirModules(t *testing.T) {
	cases := map[string]func(interfaces.LoggerProvider) interfaces.Logger{
		processorModule: ProcessorLogger,
		vaultModule:     VaultLogger,
		hostModule:      HostLogger,
	}
	for module, build := range cases {
		provider := &stubProvider{logger: &recordingLogger{}}
		_ = build(provider)
		if len(provider.requested) == 0 || provider.requested[0] != module {
			t.Fatalf("expected %s request, got %v", module, provider.requested)
		}
	}
}

func TestWithNoteContextSkipsEmptyValues(t *testing.T) {
	rec := &recordingLogger{}

	_ = WithNoteContext(rec, "  notes/daily.md ", "")

	if len(rec.fields) != 1 {
		t.Fatalf("expected a single WithFields call, got %d", len(rec.fields))
	}
	if rec.fields[0][fieldNotePath] != "notes/daily.md" {
		t.Fatalf("expected trimmed note path, got %v", rec.fields[0][fieldNotePath])
	}
	if _, ok := rec.fields[0][fieldDirectiveKind]; ok {
		t.Fatalf("expected empty directive kind to be skipped")
	}
}

func TestWithFieldsIgnoresEmptyMaps(t *testing.T) {
	rec := &recordingLogger{}
	if got := WithFields(rec, nil); got != rec {
		t.Fatalf("expected logger to be returned unchanged")
	}
	if len(rec.fields) != 0 {
		t.Fatalf("expected no WithFields calls, got %d", len(rec.fields))
	}
}

func TestWithFieldsDropsNilValuesAndEmptyKeys(t *testing.T) {
	rec := &recordingLogger{}

	_ = WithFields(rec, map[string]any{"render_id": "r1", "error": nil, "": "x"})

	if len(rec.fields) != 1 || len(rec.fields[0]) != 1 || rec.fields[0]["render_id"] != "r1" {
		t.Fatalf("expected only render_id to be kept, got %v", rec.fields)
	}

	if got := WithFields(rec, map[string]any{"error": nil}); got != rec {
		t.Fatalf("expected logger to be returned unchanged when nothing is kept")
	}
	if len(rec.fields) != 1 {
		t.Fatalf("expected no extra WithFields call, got %d", len(rec.fields))
	}
}

func TestContextFieldsMergeAndCopy(t *testing.T) {
	ctx := ContextWithFields(context.Background(), map[string]any{"a": 1, "b": 1})
	ctx = ContextWithFields(ctx, map[string]any{"b": 2})

	fields := ContextFields(ctx)
	if fields["a"] != 1 || fields["b"] != 2 {
		t.Fatalf("unexpected merged fields %#v", fields)
	}

	fields["a"] = 99
	if ContextFields(ctx)["a"] != 1 {
		t.Fatalf("expected ContextFields to return a copy")
	}
	if ContextFields(context.Background()) != nil {
		t.Fatalf("expected nil fields on bare context")
	}
}

func TestFromContextAttachesFields(t *testing.T) {
	recorder := &recordingLogger{}
	ctx := ContextWithFields(context.Background(), map[string]any{"render_batch": "b1"})

	logger := FromContext(ctx, recorder)
	rec, ok := logger.(*recordingLogger)
	if !ok {
		t.Fatalf("expected recording logger, got %T", logger)
	}
	if len(rec.contexts) != 1 || rec.contexts[0] != ctx {
		t.Fatalf("expected logger to be bound to ctx")
	}
	if len(rec.fields) != 1 || rec.fields[0]["render_batch"] != "b1" {
		t.Fatalf("expected context field, got %#v", rec.fields)
	}
}
