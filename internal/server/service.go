// Package server exposes a Recognizer over HTTP.
package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/facebookgo/grace/gracehttp"
	"github.com/gorilla/mux"
	"github.com/heptiolabs/healthcheck"
	"github.com/ieee0824/ctcdecode/decoder"
	"github.com/ieee0824/ctcdecode/internal/cmdapp"
	"github.com/ieee0824/ctcdecode/internal/document"
	"github.com/ieee0824/ctcdecode/internal/metrics"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recognizer decodes batches of sequences
type Recognizer interface {
	RecognizeBatch(ctx context.Context, inputs [][][]float64, seqLens []int) ([]decoder.Result, error)
	Text(labels []int) string
}

// ServiceData keeps data required for service work
type ServiceData struct {
	Port       int
	Recognizer Recognizer
	Collector  *metrics.Collector
	health     healthcheck.Handler
	requestDur *prometheus.HistogramVec
}

// NewServiceData prepares service data and registers its metrics
func NewServiceData(port int, rec Recognizer, collector *metrics.Collector) (*ServiceData, error) {
	res := &ServiceData{Port: port, Recognizer: rec, Collector: collector}
	res.health = healthcheck.NewHandler()
	res.health.AddReadinessCheck("recognizer", func() error {
		if res.Recognizer == nil {
			return errors.New("no recognizer")
		}
		return nil
	})
	res.requestDur = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "ctcdecode",
		Name:      "request_duration_seconds",
		Help:      "Duration of decode requests",
	}, []string{"code", "method"})
	if err := metrics.Register(res.requestDur); err != nil {
		return nil, errors.Wrap(err, "Can't register request metrics")
	}
	if collector != nil {
		if err := metrics.Register(collector); err != nil {
			return nil, errors.Wrap(err, "Can't register decode metrics")
		}
	}
	return res, nil
}

// StartWebServer starts the HTTP service and listens for the requests
func StartWebServer(data *ServiceData) error {
	cmdapp.Log.Infof("Starting HTTP service at %d", data.Port)
	r := NewRouter(data)

	portStr := strconv.Itoa(data.Port)
	srv := http.Server{
		Addr:              ":" + portStr,
		WriteTimeout:      60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       60 * time.Second,
		Handler:           r,
	}

	w := cmdapp.Log.Writer()
	defer w.Close()
	gracehttp.SetLogger(log.New(w, "", 0))

	if err := gracehttp.Serve(&srv); err != nil {
		return errors.Wrap(err, "Can't start HTTP listener at port "+portStr)
	}
	return nil
}

// NewRouter creates the router for HTTP service
func NewRouter(data *ServiceData) *mux.Router {
	router := mux.NewRouter()
	var h http.Handler = &decodeHandler{data: data}
	if data.requestDur != nil {
		h = promhttp.InstrumentHandlerDuration(data.requestDur, h)
	}
	router.Methods("POST").Path("/decode").Handler(h)
	router.Methods("GET").Path("/metrics").Handler(promhttp.Handler())
	if data.health != nil {
		router.Methods("GET").Path("/live").HandlerFunc(data.health.LiveEndpoint)
		router.Methods("GET").Path("/ready").HandlerFunc(data.health.ReadyEndpoint)
	}
	return router
}

type decodeHandler struct {
	data *ServiceData
}

func (h *decodeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	cmdapp.Log.Debugf("Request from %s", r.Host)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	var input document.Input
	if err := dec.Decode(&input); err != nil {
		h.fail(w, "Cannot decode input", http.StatusBadRequest, err)
		return
	}
	if len(input.Sequences) == 0 {
		h.fail(w, "No sequences", http.StatusBadRequest, nil)
		return
	}

	inputs, seqLens := input.Batch()
	results, err := h.data.Recognizer.RecognizeBatch(r.Context(), inputs, seqLens)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, decoder.ErrInvalidInput) {
			code = http.StatusBadRequest
		}
		h.fail(w, "Cannot decode: "+err.Error(), code, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(document.NewOutput(results, h.data.Recognizer.Text)); err != nil {
		cmdapp.Log.Error(errors.Wrap(err, "Can not write result"))
	}
}

func (h *decodeHandler) fail(w http.ResponseWriter, msg string, code int, err error) {
	http.Error(w, msg, code)
	if err != nil {
		cmdapp.Log.WithError(err).Error(msg)
	} else {
		cmdapp.Log.Error(msg)
	}
	if h.data.Collector != nil {
		h.data.Collector.ObserveFailure()
	}
}
