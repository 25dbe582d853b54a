// Package classifier owns the model handle used to score fruit images.
//
// A Classifier is chosen exactly once, by Load, and never replaced:
//
//   - Inference: preprocesses the image, runs the model through an Engine and
//     takes the arg-max class. engine_onnx.go provides the ONNX Runtime engine
//     (cgo builds); engine_stub.go refuses to load when cgo is disabled.
//   - Simulated: picks a random class and confidence. Used when the model
//     artifact or the runtime is unavailable.
//
// Files:
//
//   - classifier.go: Classifier interface, Result and Info.
//   - engine.go: Engine interface and ONNX options.
//   - errors.go: error types and helpers (IsModelNotFound, IsRuntimeUnavailable).
//   - inference.go, simulated.go: the two strategies.
//   - loader.go: startup selection between the strategies.
package classifier
