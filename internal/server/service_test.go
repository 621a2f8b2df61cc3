package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"math"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/heptiolabs/healthcheck"
	"github.com/ieee0824/ctcdecode/decoder"
	"github.com/ieee0824/ctcdecode/internal/document"
	"github.com/ieee0824/ctcdecode/internal/metrics"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRecognizer struct {
	seqLens []int
	err     error
}

func (f *fakeRecognizer) RecognizeBatch(_ context.Context, inputs [][][]float64, seqLens []int) ([]decoder.Result, error) {
	f.seqLens = seqLens
	if f.err != nil {
		return nil, f.err
	}
	res := make([]decoder.Result, len(inputs))
	for i := range inputs {
		res[i] = decoder.Result{Paths: []decoder.Path{{Labels: []int{0, 2}, LogProb: -1.5}}}
	}
	return res, nil
}

func (f *fakeRecognizer) Text(labels []int) string {
	return strings.Repeat("a", len(labels))
}

func newData(rec Recognizer) *ServiceData {
	data := ServiceData{Recognizer: rec, Collector: metrics.NewCollector()}
	data.health = healthcheck.NewHandler()
	return &data
}

func newInput(t *testing.T, in document.Input) io.Reader {
	result := new(bytes.Buffer)
	require.NoError(t, json.NewEncoder(result).Encode(in))
	return result
}

func TestWrongPath(t *testing.T) {
	req := httptest.NewRequest("GET", "/invalid", nil)
	resp := httptest.NewRecorder()
	NewRouter(newData(&fakeRecognizer{})).ServeHTTP(resp, req)
	assert.Equal(t, 404, resp.Code)
}

func TestWrongMethod(t *testing.T) {
	req := httptest.NewRequest("GET", "/decode", nil)
	resp := httptest.NewRecorder()
	NewRouter(newData(&fakeRecognizer{})).ServeHTTP(resp, req)
	assert.Equal(t, 405, resp.Code)
}

func TestDecode(t *testing.T) {
	rec := &fakeRecognizer{}
	length := 1
	in := document.Input{Sequences: []document.Sequence{
		{Steps: [][]float64{{-0.1, -2}, {-0.1, -2}}},
		{Length: &length, Steps: [][]float64{{-0.1, -2}, {-0.1, -2}}},
	}}
	req := httptest.NewRequest("POST", "/decode", newInput(t, in))
	resp := httptest.NewRecorder()
	NewRouter(newData(rec)).ServeHTTP(resp, req)
	require.Equal(t, 200, resp.Code)
	assert.Equal(t, []int{2, 1}, rec.seqLens)

	var out document.Output
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out.Results, 2)
	assert.Equal(t, document.Path{Labels: []int{0, 2}, Text: "aa", LogProb: -1.5}, out.Results[0].Paths[0])
}

func TestNoData(t *testing.T) {
	data := newData(&fakeRecognizer{})
	req := httptest.NewRequest("POST", "/decode", nil)
	resp := httptest.NewRecorder()
	NewRouter(data).ServeHTTP(resp, req)
	assert.Equal(t, 400, resp.Code)
	expected := `
# HELP ctcdecode_requests_failed_total Decode requests that failed validation or decoding
# TYPE ctcdecode_requests_failed_total counter
ctcdecode_requests_failed_total 1
`
	assert.NoError(t, testutil.CollectAndCompare(data.Collector, strings.NewReader(expected), "ctcdecode_requests_failed_total"))
}

func TestNoSequences(t *testing.T) {
	req := httptest.NewRequest("POST", "/decode", newInput(t, document.Input{}))
	resp := httptest.NewRecorder()
	NewRouter(newData(&fakeRecognizer{})).ServeHTTP(resp, req)
	assert.Equal(t, 400, resp.Code)
}

func TestUnknownField(t *testing.T) {
	req := httptest.NewRequest("POST", "/decode", strings.NewReader(`{"sequencez": []}`))
	resp := httptest.NewRecorder()
	NewRouter(newData(&fakeRecognizer{})).ServeHTTP(resp, req)
	assert.Equal(t, 400, resp.Code)
}

func TestInvalidInput(t *testing.T) {
	rec := &fakeRecognizer{err: errors.Wrap(decoder.ErrInvalidInput, "bad")}
	in := document.Input{Sequences: []document.Sequence{{Steps: [][]float64{{0}}}}}
	req := httptest.NewRequest("POST", "/decode", newInput(t, in))
	resp := httptest.NewRecorder()
	NewRouter(newData(rec)).ServeHTTP(resp, req)
	assert.Equal(t, 400, resp.Code)
}

func TestRecognizerFails(t *testing.T) {
	rec := &fakeRecognizer{err: errors.New("boom")}
	in := document.Input{Sequences: []document.Sequence{{Steps: [][]float64{{0}}}}}
	req := httptest.NewRequest("POST", "/decode", newInput(t, in))
	resp := httptest.NewRecorder()
	NewRouter(newData(rec)).ServeHTTP(resp, req)
	assert.Equal(t, 500, resp.Code)
}

func TestDecode_RejectedPath(t *testing.T) {
	rec := &rejectingRecognizer{}
	in := document.Input{Sequences: []document.Sequence{{Steps: [][]float64{{0}}}}}
	req := httptest.NewRequest("POST", "/decode", newInput(t, in))
	resp := httptest.NewRecorder()
	NewRouter(newData(rec)).ServeHTTP(resp, req)
	require.Equal(t, 200, resp.Code)

	var out document.Output
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.True(t, out.Results[0].Paths[0].Rejected)
	assert.Equal(t, []int{}, out.Results[0].Paths[0].Labels)
}

type rejectingRecognizer struct{}

func (rejectingRecognizer) RecognizeBatch(context.Context, [][][]float64, []int) ([]decoder.Result, error) {
	return []decoder.Result{{Paths: []decoder.Path{{LogProb: -math.MaxFloat64}}}}, nil
}

func (rejectingRecognizer) Text([]int) string { return "" }

func TestLive(t *testing.T) {
	testCode(t, newData(&fakeRecognizer{}), "/live", 200)
}

func TestLive503(t *testing.T) {
	data := newData(&fakeRecognizer{})
	data.health.AddLivenessCheck("test", func() error { return errors.New("test") })
	testCode(t, data, "/live", 503)
}

func TestReady(t *testing.T) {
	testCode(t, newData(&fakeRecognizer{}), "/ready", 200)
}

func TestMetricsEndpoint(t *testing.T) {
	testCode(t, newData(&fakeRecognizer{}), "/metrics", 200)
}

func TestNewServiceData(t *testing.T) {
	data, err := NewServiceData(8000, nil, metrics.NewCollector())
	require.NoError(t, err)
	testCode(t, data, "/ready", 503)

	data, err = NewServiceData(8000, &fakeRecognizer{}, metrics.NewCollector())
	require.NoError(t, err)
	testCode(t, data, "/ready", 200)
}

func testCode(t *testing.T, data *ServiceData, path string, code int) {
	req := httptest.NewRequest("GET", path, nil)
	resp := httptest.NewRecorder()
	NewRouter(data).ServeHTTP(resp, req)
	assert.Equal(t, code, resp.Code)
}
