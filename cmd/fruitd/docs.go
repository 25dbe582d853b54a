package main

// General API documentation for swaggo. Regenerate internal/docs with
// `swag init -g cmd/fruitd/docs.go -o internal/docs`.
//
// @title           Pic a Fruit API
// @version         1.0
// @description     AI-powered fruit freshness detection API
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
