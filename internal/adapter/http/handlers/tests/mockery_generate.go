package tests

// Mock generation example for handler tests.
//
// Usage:
//   go generate ./internal/adapter/http/handlers/tests
//
//go:generate mockery --name BoardReader --dir ../../../../core/ports --output ./mocks --outpkg mocks --filename board_reader_mock.go --with-expecter
