// Package finalize loads a bill for editing and turns the edited shares into
// a calculation summary.
//
// The gateway is authoritative when it answers. When any step of the
// submit/fetch/decode sequence fails, the summary is computed locally and the
// result carries a notice explaining why; Finalize itself only fails on
// validation.
package finalize

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/splitter/internal/editor"
	"github.com/mmynk/splitter/internal/fallback"
	"github.com/mmynk/splitter/internal/gateway"
	"github.com/mmynk/splitter/internal/metrics"
	"github.com/mmynk/splitter/internal/models"
	"github.com/mmynk/splitter/internal/reconcile"
	"github.com/mmynk/splitter/internal/summarytext"
)

// Source records which side produced a summary.
type Source string

const (
	SourceGateway Source = "gateway"
	SourceLocal   Source = "local"
)

// Result is a finalized summary together with its text form.
type Result struct {
	Summary models.CalculationSummary
	Text    string
	Source  Source
	// Notice is set when the summary was computed locally.
	Notice string
}

// Workflow runs load and finalize against a gateway.
type Workflow struct {
	gw      gateway.Gateway
	metrics *metrics.Metrics
}

// New creates a workflow. A nil m uses metrics.Default().
func New(gw gateway.Gateway, m *metrics.Metrics) *Workflow {
	if m == nil {
		m = metrics.Default()
	}
	return &Workflow{gw: gw, metrics: m}
}

// Load fetches a bill and its roster and reconciles any stored shares into an
// editing state. Failing to fetch shares is not an error: every share starts
// at zero instead.
func (w *Workflow) Load(ctx context.Context, billID int64) (editor.State, error) {
	bill, err := w.gw.FetchBill(ctx, billID)
	if err != nil {
		return editor.State{}, fmt.Errorf("load bill %d: %w", billID, err)
	}
	users, err := w.gw.FetchUsers(ctx, billID)
	if err != nil {
		return editor.State{}, fmt.Errorf("load users of bill %d: %w", billID, err)
	}

	records, err := w.gw.FetchShares(ctx, billID)
	if err != nil {
		slog.Warn("Stored shares unavailable, starting from zero", "bill_id", billID, "error", err)
	}
	splits := reconcile.Reconcile(bill.Items, users, records, err)

	slog.Debug("Bill loaded", "bill_id", billID, "items", len(bill.Items),
		"users", len(users), "records", len(records))
	return editor.New(bill, users, splits), nil
}

// Finalize validates the state, submits it and returns the gateway's summary,
// or a locally computed one if the gateway cannot provide it.
// The only error returned is a *calculator.ValidationError.
func (w *Workflow) Finalize(ctx context.Context, state editor.State) (Result, error) {
	if err := state.Validate(); err != nil {
		return Result{}, err
	}

	billID := state.Bill().ID
	if err := w.gw.SubmitShares(ctx, billID, models.ToSubmitted(state.Splits())); err != nil {
		return w.local(state, "SubmitShares", err), nil
	}

	text, err := w.gw.FetchCalculation(ctx, billID)
	if err != nil {
		return w.local(state, "GetCalculation", err), nil
	}

	roster, err := w.gw.FetchUsers(ctx, billID)
	if err != nil {
		return w.local(state, "ListUsers", err), nil
	}

	summary := summarytext.Decode(text, roster, state.Users())
	if len(summary.Users) == 0 {
		err := gateway.Malformed("GetCalculation", errors.New("no user lines in calculation"))
		return w.local(state, "GetCalculation", err), nil
	}

	slog.Info("Bill finalized", "bill_id", billID, "source", SourceGateway, "users", len(summary.Users))
	return Result{Summary: summary, Text: text, Source: SourceGateway}, nil
}

func (w *Workflow) local(state editor.State, op string, err error) Result {
	w.metrics.Fallbacks.WithLabelValues(op).Inc()
	slog.Warn("Gateway unavailable, computing locally", "bill_id", state.Bill().ID, "op", op, "error", err)

	summary, text := fallback.Render(state.Users(), state.Splits(), state.Totals())
	return Result{
		Summary: summary,
		Text:    text,
		Source:  SourceLocal,
		Notice:  Notice(err),
	}
}

// Notice explains a gateway failure to the user.
func Notice(err error) string {
	var ue *gateway.UnavailableError
	if !errors.As(err, &ue) {
		return "Failed to save splits. Using local calculations..."
	}
	switch ue.Reason {
	case gateway.ReasonTransport:
		return "Network error. Using local calculations..."
	case gateway.ReasonMalformed:
		return "Unreadable calculation from the gateway. Using local calculations..."
	}

	switch ue.Code {
	case connect.CodeInvalidArgument:
		msg := ue.Err.Error()
		if strings.Contains(msg, "UserId") && strings.Contains(msg, "does not exist") {
			return "User data synchronization issue. Using local calculations..."
		}
		return "Invalid request data. Using local calculations..."
	case connect.CodeNotFound, connect.CodeUnimplemented:
		return "Service endpoint not found. Using local calculations..."
	case connect.CodeInternal, connect.CodeUnavailable:
		return "Backend service temporarily unavailable. Using local calculations..."
	default:
		return "Failed to save splits. Using local calculations..."
	}
}
