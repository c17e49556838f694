//go:generate mockgen -source=../purchase_validator.go  -destination=./mock_purchase_validator.go  -package=mocks
//go:generate mockgen -source=../purchase_repository.go -destination=./mock_purchase_repository.go -package=mocks
//go:generate mockgen -source=../purchase_enqueuer.go   -destination=./mock_purchase_enqueuer.go   -package=mocks
//go:generate mockgen -source=../purchase_submitter.go  -destination=./mock_purchase_submitter.go  -package=mocks
//go:generate mockgen -source=../reference_cache.go     -destination=./mock_reference_cache.go     -package=mocks
//go:generate mockgen -source=../reference_generator.go -destination=./mock_reference_generator.go -package=mocks
//go:generate mockgen -source=../message_consumer.go    -destination=./mock_message_consumer.go    -package=mocks

package mocks
