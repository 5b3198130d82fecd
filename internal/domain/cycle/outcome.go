package cycle

import "fmt"

// Result classifies how a finished cycle ended.
type Result string

const (
	ResultSuccess        Result = "SUCCESS"
	ResultCaptureFailed  Result = "CAPTURE_FAILED"
	ResultDeliveryFailed Result = "DELIVERY_FAILED"
)

// Outcome is the single report produced by one capture-and-deliver
// attempt. Err is nil exactly when Result is ResultSuccess.
type Outcome struct {
	Result Result
	Err    error
}

func Succeeded() Outcome {
	return Outcome{Result: ResultSuccess}
}

func CaptureFailed(err error) Outcome {
	return Outcome{Result: ResultCaptureFailed, Err: err}
}

func DeliveryFailed(err error) Outcome {
	return Outcome{Result: ResultDeliveryFailed, Err: err}
}

// OK reports whether the cycle delivered its image.
func (o Outcome) OK() bool {
	return o.Result == ResultSuccess
}

// Describe renders the outcome as a human-readable sentence.
func (o Outcome) Describe() string {
	switch o.Result {
	case ResultSuccess:
		return "image delivered"
	case ResultCaptureFailed:
		return fmt.Sprintf("capture failed: %v", o.Err)
	case ResultDeliveryFailed:
		return fmt.Sprintf("delivery failed: %v", o.Err)
	default:
		return string(o.Result)
	}
}
