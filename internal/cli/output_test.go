package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"fig-tracker/internal/models"
)

func newBufferOutput(jsonMode bool) (*Output, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return &Output{writer: buf, jsonMode: jsonMode, colorEnabled: false}, buf
}

func TestJSONOutput(t *testing.T) {
	output, buf := newBufferOutput(true)

	if err := output.JSON(map[string]int{"days": 21}); err != nil {
		t.Fatalf("JSON: %v", err)
	}

	var decoded map[string]int
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded["days"] != 21 {
		t.Errorf("decoded = %v", decoded)
	}
}

func TestTableRender(t *testing.T) {
	output, buf := newBufferOutput(false)

	table := NewTable(output, "Dia", "Resultado")
	table.AddRow("01 Sex", "R$ 100,00")
	table.AddRow("04 Seg", "-R$ 40,00")
	table.Render()

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header, separator and 2 rows, got %d lines", len(lines))
	}
	if !strings.Contains(lines[0], "Dia") || !strings.Contains(lines[0], "Resultado") {
		t.Errorf("header missing: %q", lines[0])
	}
	if !strings.Contains(lines[2], "01 Sex") {
		t.Errorf("first row missing: %q", lines[2])
	}
}

func TestStripANSI(t *testing.T) {
	colored := ColorGreen + "R$ 1,00" + ColorReset
	if got := stripANSI(colored); got != "R$ 1,00" {
		t.Errorf("stripANSI = %q", got)
	}
}

func TestFormatPnLPlain(t *testing.T) {
	output, _ := newBufferOutput(false)

	if got := output.FormatPnL(41); got != "+R$ 41,00" {
		t.Errorf("FormatPnL(41) = %q", got)
	}
	if got := output.FormatPnL(-41); got != "-R$ 41,00" {
		t.Errorf("FormatPnL(-41) = %q", got)
	}
}

func TestSpinnerRotatesPhrases(t *testing.T) {
	buf := &bytes.Buffer{}
	output := &Output{writer: buf, colorEnabled: true}

	spin := NewSpinner(output, "Sincronizando carteira...", "Otimizando IA...")
	spin.interval = time.Millisecond
	spin.phraseEvery = 5 * time.Millisecond

	spin.Start(context.Background())
	time.Sleep(30 * time.Millisecond)
	spin.Stop()

	out := buf.String()
	if !strings.Contains(out, "Sincronizando carteira...") {
		t.Errorf("first caption never rendered:\n%q", out)
	}
	if !strings.Contains(out, "Otimizando IA...") {
		t.Errorf("caption rotation never advanced:\n%q", out)
	}
	if !strings.HasSuffix(out, "\r") {
		t.Errorf("line was not cleared on stop:\n%q", out)
	}
}

func TestSpinnerInertWithoutTerminal(t *testing.T) {
	output, buf := newBufferOutput(true)

	spin := NewSpinner(output)
	spin.Start(context.Background())
	spin.Stop()

	if buf.Len() != 0 {
		t.Errorf("spinner wrote control characters in JSON mode: %q", buf.String())
	}
}

func TestSpinnerStopsOnCancel(t *testing.T) {
	buf := &bytes.Buffer{}
	output := &Output{writer: buf, colorEnabled: true}

	spin := NewSpinner(output, "Sincronizando carteira...")
	spin.interval = time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	spin.Start(ctx)
	cancel()

	select {
	case <-spin.stopped:
	case <-time.After(time.Second):
		t.Fatal("spinner goroutine did not exit on context cancel")
	}
}

func TestSentimentMarkers(t *testing.T) {
	output, _ := newBufferOutput(false)

	tests := []struct {
		in   models.Sentiment
		want string
	}{
		{models.SentimentPositive, "▲ positive"},
		{models.SentimentNegative, "▼ negative"},
		{models.SentimentNeutral, "► neutral"},
		{models.SentimentUnset, "-"},
	}
	for _, tt := range tests {
		if got := output.Sentiment(tt.in); got != tt.want {
			t.Errorf("Sentiment(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
