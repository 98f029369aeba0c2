package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Store --dir ../infrastructure/kvstore --output infrastructure/kvstore --outpkg kvstoremock --filename store_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/team --output domain/team --outpkg teammock --filename repository_mock.go
