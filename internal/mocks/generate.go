package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name PicksRepository --dir ../domain/pickem --output domain/pickem --outpkg pickemmock --filename picks_repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name FeatureRepository --dir ../domain/pickem --output domain/pickem --outpkg pickemmock --filename feature_repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name MatchProvider --dir ../domain/pickem --output domain/pickem --outpkg pickemmock --filename match_provider_mock.go
