package types

import "encoding/json"

// Status values carried in the "status" field of prediction responses.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// RootResponse is returned by GET /.
type RootResponse struct {
	// Human-readable banner.
	// example: Pic a Fruit API is running!
	Message string `json:"message" example:"Pic a Fruit API is running!"`
	// Service status.
	// example: healthy
	Status string `json:"status" example:"healthy"`
	// Whether a real model was loaded at startup.
	// example: true
	ModelLoaded bool `json:"model_loaded" example:"true"`
	// API version.
	// example: 1.0.0
	Version string `json:"version" example:"1.0.0"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	// Service status.
	// example: healthy
	Status string `json:"status" example:"healthy"`
	// "loaded" when a real model serves predictions, "not_loaded" otherwise.
	// example: loaded
	ModelStatus string `json:"model_status" example:"loaded"`
	// True when predictions are simulated.
	// example: false
	DemoMode bool `json:"demo_mode" example:"false"`
	// Labels the service can return, in model output order.
	SupportedClasses []string `json:"supported_classes"`
}

// PredictResponse is returned by POST /predict with HTTP 200.
//
// On a confident prediction Status is "success" and Label is one of the
// supported classes. When the model is not confident enough Status is
// "error", Label carries a notice and Message explains what to do.
type PredictResponse struct {
	// "success" or "error".
	// example: success
	Status string `json:"status" example:"success"`
	// Predicted class, or a low-confidence notice.
	// example: freshapples
	Label string `json:"label" example:"freshapples"`
	// Arg-max probability in [0,1].
	// example: 0.93
	Confidence float64 `json:"confidence" example:"0.93"`
	// Identifier of the model that produced the prediction.
	// example: cnnVGG16rv2
	ModelVersion string `json:"model_version,omitempty" example:"cnnVGG16rv2"`
	// True when the prediction was simulated.
	// example: false
	DemoMode bool `json:"demo_mode" example:"false"`
	// Optional explanation.
	Message string `json:"message,omitempty"`
	// Fruit parsed from the label.
	// example: apple
	Fruit string `json:"fruit,omitempty" example:"apple"`
	// Condition parsed from the label.
	// example: fresh
	Condition string `json:"condition,omitempty" example:"fresh"`
}

// lowConfidenceBody is the wire shape of a below-threshold prediction.
type lowConfidenceBody struct {
	Status     string  `json:"status"`
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
	Message    string  `json:"message"`
}

// MarshalJSON writes error-status responses as {status, label, confidence,
// message}; every other response uses the full field set.
func (p PredictResponse) MarshalJSON() ([]byte, error) {
	if p.Status == StatusError {
		return json.Marshal(lowConfidenceBody{
			Status:     p.Status,
			Label:      p.Label,
			Confidence: p.Confidence,
			Message:    p.Message,
		})
	}
	type plain PredictResponse
	return json.Marshal(plain(p))
}

// ClassesResponse is returned by GET /classes.
type ClassesResponse struct {
	Classes []ClassInfo `json:"classes"`
}

// ErrorResponse is the payload of every 4xx/5xx response.
type ErrorResponse struct {
	// Human-readable reason.
	// example: File harus berupa gambar (jpg, png, dll)
	Detail string `json:"detail" example:"File harus berupa gambar (jpg, png, dll)"`
}
