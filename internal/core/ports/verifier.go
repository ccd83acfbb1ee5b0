package ports

// OutputVerifier checks that the outputs of a target can be reused.
//
//go:generate go run go.uber.org/mock/mockgen -source=verifier.go -destination=mocks/mock_verifier.go -package=mocks
type OutputVerifier interface {
	// VerifyOutputs reports whether every output, relative to root, is a
	// complete artifact.
	VerifyOutputs(root string, outputs []string) (bool, error)
}
