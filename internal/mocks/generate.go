// Package mocks provides gomock implementations of the marketplace interfaces.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	store := mocks.NewMockStore(ctrl)
//	store.EXPECT().GetJob(gomock.Any(), id).Return(job, nil)
package mocks

//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=store_mock.go github.com/sudo-init-do/solosphere/internal/marketplace Store
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=notifier_mock.go github.com/sudo-init-do/solosphere/internal/marketplace Notifier
