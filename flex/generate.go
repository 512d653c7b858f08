//go:generate go run github.com/san-kum/goflex/cmd/flexgen generate --config ../flexgen.yaml

package flex
