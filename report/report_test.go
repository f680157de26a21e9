package report

import "testing"

func TestErrorCounting(t *testing.T) {
	InitReporter(LogLevelSilent, "test")

	if AnyErrors() {
		t.Fatal("fresh reporter has errors")
	}

	ReportError(nil, "first")
	ReportError(&TextSpan{StartLine: 2, StartCol: 4}, "second %d", 2)

	if !AnyErrors() || ErrorCount() != 2 {
		t.Errorf("error count = %d, want 2", ErrorCount())
	}

	// Re-initialization discards the recorded errors.
	InitReporter(LogLevelSilent, "test")
	if AnyErrors() {
		t.Error("errors survived re-initialization")
	}
}

func TestNewSpanOver(t *testing.T) {
	start := &TextSpan{StartLine: 1, StartCol: 2, EndLine: 1, EndCol: 5}
	end := &TextSpan{StartLine: 3, StartCol: 0, EndLine: 3, EndCol: 7}

	span := NewSpanOver(start, end)

	if span.StartLine != 1 || span.StartCol != 2 || span.EndLine != 3 || span.EndCol != 7 {
		t.Errorf("span = %+v", span)
	}
}
