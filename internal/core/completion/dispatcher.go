package completion

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"whisky-sommelier/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// State 調度狀態機：Pending → Attempting → Success / Exhausted
type State int

const (
	StatePending State = iota
	StateAttempting
	StateSuccess
	StateExhausted
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateAttempting:
		return "attempting"
	case StateSuccess:
		return "success"
	case StateExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// AttemptFailure 單一端點的失敗記錄，依嘗試順序累積
type AttemptFailure struct {
	Endpoint string `json:"endpoint"`
	Reason   string `json:"reason"`
}

// ExhaustedError 所有端點皆失敗時回傳的聚合錯誤
type ExhaustedError struct {
	Failures []AttemptFailure
}

func (e *ExhaustedError) Error() string {
	parts := make([]string, 0, len(e.Failures))
	for i, f := range e.Failures {
		parts = append(parts, fmt.Sprintf("[%d] %s: %s", i+1, f.Endpoint, f.Reason))
	}
	return fmt.Sprintf("all %d completion endpoints failed: %s", len(e.Failures), strings.Join(parts, "; "))
}

// Dispatcher 按優先順序將請求送往候選端點。嚴格逐一嘗試、
// 不平行競速，保證優先序語意且不會產生重複計費的調用。
// 單一實例供所有請求共用，狀態機在每次 Dispatch 內各自推進。
type Dispatcher struct {
	client    *resty.Client
	endpoints []string
	lastState atomic.Int32 // 最近一次調度的終態，僅供觀察
}

// NewDispatcher 創建調度器。timeout 為單一端點的嘗試超時，
// 逾時視同網路失敗，前進到下一個候選端點。
func NewDispatcher(endpoints []string, apiKey string, timeout time.Duration) *Dispatcher {
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", apiKey)).
		SetHeader("anthropic-version", "2023-06-01")

	return &Dispatcher{
		client:    client,
		endpoints: endpoints,
	}
}

// Dispatch 送出補全請求，首個成功的端點即終止，其餘不再嘗試。
// 全數失敗時回傳 *ExhaustedError，按嘗試順序列出每個端點的失敗原因。
// ctx 取消會中止當前嘗試並放棄所有後續端點。
func (d *Dispatcher) Dispatch(ctx context.Context, req *Request) ([]byte, error) {
	// 狀態放在區域變數推進，實例被多個請求共用時各跑各的狀態機
	state := StatePending
	var failures []AttemptFailure

	for _, endpoint := range d.endpoints {
		state = StateAttempting
		start := time.Now()

		resp, err := d.client.R().
			SetContext(ctx).
			SetBody(req).
			Post(endpoint)

		if err != nil {
			common.LogUpstreamCall(endpoint, time.Since(start), err)
			// 整體請求被取消時不再前進，直接中止
			if ctx.Err() != nil {
				return nil, fmt.Errorf("dispatch aborted: %w", ctx.Err())
			}
			failures = append(failures, AttemptFailure{
				Endpoint: endpoint,
				Reason:   fmt.Sprintf("network error: %v", err),
			})
			continue
		}

		if resp.IsError() {
			reason := fmt.Sprintf("status %d: %s", resp.StatusCode(), truncate(resp.String(), 200))
			common.LogUpstreamCall(endpoint, time.Since(start), fmt.Errorf("%s", reason))
			failures = append(failures, AttemptFailure{
				Endpoint: endpoint,
				Reason:   reason,
			})
			continue
		}

		state = StateSuccess
		d.lastState.Store(int32(state))
		common.LogUpstreamCall(endpoint, time.Since(start), nil)
		common.LogDebug("調度完成",
			zap.String("endpoint", endpoint),
			zap.String("state", state.String()),
			zap.Int("attempts", len(failures)+1),
		)
		return resp.Body(), nil
	}

	state = StateExhausted
	d.lastState.Store(int32(state))
	common.LogError("所有補全端點皆失敗",
		zap.String("state", state.String()),
		zap.Int("endpoints", len(d.endpoints)),
	)
	return nil, &ExhaustedError{Failures: failures}
}

// LastState 回傳最近一次調度的終態，供健康檢查與測試觀察
func (d *Dispatcher) LastState() State {
	return State(d.lastState.Load())
}

// Endpoints 回傳候選端點（依優先順序）
func (d *Dispatcher) Endpoints() []string {
	return d.endpoints
}

// Close 關閉調度器
func (d *Dispatcher) Close() error {
	d.client.GetClient().CloseIdleConnections()
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
