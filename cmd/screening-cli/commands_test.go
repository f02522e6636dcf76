package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/screening-recommender/internal/domain"
)

func csvBody(t *testing.T, rows ...[]string) string {
	t.Helper()
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	require.NoError(t, w.WriteAll(rows))
	return buf.String()
}

func repeat(value string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = value
	}
	return out
}

// sheetServer serves one client, Jane Doe, with PHQ-9 total 12, BAI total
// 18 and a non-acute ASQ screen.
func sheetServer(t *testing.T) *httptest.Server {
	t.Helper()

	phq9Header := append([]string{"Timestamp", "First name", "Middle name", "Last name", "Suffix  (e.g., Jr., Sr., III)",
		"Little interest or pleasure in doing things"}, repeat("item", 8)...)
	phq9Items := []string{
		"Not at all", "Not at all", "Not at all", "Several Days", "Several Days",
		"More than half the days", "More than half the days", "Nearly every day", "Nearly every day",
	}
	phq9 := csvBody(t, phq9Header, append([]string{"2024-03-01", "Jane", "", "Doe", ""}, phq9Items...))

	asq := csvBody(t,
		repeat("q", 11),
		[]string{"2024-03-01", "Yes", "None of the above", "No", "", "No", "No", "", "Jane", "", "Doe"},
	)

	baiItems := append(repeat("Moderately - it wasn't pleasant at times", 6), repeat("Mildly, but it didn't bother me much", 6)...)
	baiItems = append(baiItems, repeat("Not at all", 9)...)
	baiRow := append(append([]string{"2024-03-01"}, baiItems...), "Jane", "", "Doe", "jane@example.com")
	bai := csvBody(t, repeat("q", len(baiRow)), baiRow)

	mux := http.NewServeMux()
	mux.HandleFunc("/phq9", func(w http.ResponseWriter, r *http.Request) { _, _ = io.WriteString(w, phq9) })
	mux.HandleFunc("/asq", func(w http.ResponseWriter, r *http.Request) { _, _ = io.WriteString(w, asq) })
	mux.HandleFunc("/bai", func(w http.ResponseWriter, r *http.Request) { _, _ = io.WriteString(w, bai) })

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func writeConfig(t *testing.T, baseURL string) string {
	t.Helper()
	content := fmt.Sprintf(`
sources:
  phq9_url: %[1]s/phq9
  asq_url: %[1]s/asq
  bai_url: %[1]s/bai
model:
  classifier_path: ../../models/tool_classifier.yaml
  decoder_path: ../../models/tool_labels.yaml
narrative:
  phq9_path: ../../phrases/phrases_phq9.json
  asq_path: ../../phrases/phrases_asq.json
  bai_path: ../../phrases/phrases_bai.json
  seed: 42
logging:
  level: error
`, baseURL)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestAnalyzeCommand(t *testing.T) {
	configPath := writeConfig(t, sheetServer(t).URL)

	out, err := run(t, "analyze", "--config", configPath, "--first-name", "jane", "--last-name", "DOE")
	require.NoError(t, err)

	var result domain.AnalysisResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "Jane Doe", result.PHQ9.ClientName)
	assert.Equal(t, 12, result.PHQ9.TotalScore)
	assert.Equal(t, "Moderate Depression (10-14)", result.PHQ9.Interpretation)
	assert.Equal(t, 18, result.BAI.TotalScore)
	assert.Equal(t, "Low Anxiety (0-21)", result.BAI.Interpretation)
	assert.Equal(t, "Non-Acute Positive Screen", result.ASQ.Interpretation)
	assert.Len(t, result.PHQ9.AdditionalImpressions, 2)
	assert.Equal(t,
		[]string{"Behavioral Activation", "Cognitive Restructuring", "Psychoeducation", "Sleep Hygiene"},
		result.RecommendedTools)
}

func TestAnalyzeCommandTrace(t *testing.T) {
	configPath := writeConfig(t, sheetServer(t).URL)

	out, err := run(t, "analyze", "--config", configPath, "--first-name", "Jane", "--last-name", "Doe", "--trace")
	require.NoError(t, err)

	var body struct {
		Result domain.AnalysisResult `json:"result"`
		Trace  domain.AnalysisTrace  `json:"trace"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &body))
	assert.NotEmpty(t, body.Trace.ID)
	assert.Equal(t, domain.FeatureVector{12, 2, 18, 0, 0}, body.Trace.Features)
}

func TestAnalyzeCommandErrors(t *testing.T) {
	configPath := writeConfig(t, sheetServer(t).URL)

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"missing last name", []string{"--first-name", "Jane"}, "last name is required"},
		{"unknown client", []string{"--first-name", "John", "--last-name", "Smith"}, "Client not found in PHQ9 data"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"analyze", "--config", configPath}, tt.args...)
			_, err := run(t, args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRecommendCommand(t *testing.T) {
	configPath := writeConfig(t, "http://127.0.0.1:1")

	out, err := run(t, "recommend", "--config", configPath, "--risk-code", "1")
	require.NoError(t, err)
	assert.Contains(t, out, `"Crisis Safety Plan"`)

	_, err = run(t, "recommend", "--config", configPath, "--phq9-code", "7")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Primary_Impression_PHQ9")
}

func TestValidateCommand(t *testing.T) {
	configPath := writeConfig(t, "http://127.0.0.1:1")

	out, err := run(t, "validate", "--config", configPath)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(out, "ok\n"))
	assert.Contains(t, out, "source PHQ9: http://127.0.0.1:1/phq9\n")
	assert.Contains(t, out, "phrases: ../../phrases/phrases_phq9.json, ../../phrases/phrases_asq.json, ../../phrases/phrases_bai.json\n")

	broken := filepath.Join(t.TempDir(), "config.yaml")
	raw, err := os.ReadFile(configPath)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(broken,
		[]byte(strings.Replace(string(raw), "tool_labels.yaml", "missing.yaml", 1)), 0o600))

	out, err = run(t, "validate", "--config", broken)
	require.Error(t, err)
	assert.Contains(t, out, "problem: failed to load model artifacts")
}
