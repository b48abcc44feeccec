package mocks

//go:generate -command mockgen mockgen -package=mocks
//go:generate mockgen -destination=./manifest_mock.go github.com/bunaudit/bunaudit Manifest
