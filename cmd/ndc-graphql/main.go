// Command ndc-graphql runs the GraphQL-to-NDC bridge server. Wiring only:
// all translation logic lives in bridge.Connector and the internal/
// packages it composes.
package main

import (
	"log"

	ndcconnector "github.com/hasura/ndc-sdk-go/connector"

	"github.com/hasura/ndc-graphql/bridge"
)

func main() {
	if err := ndcconnector.Start[bridge.Configuration, bridge.State](
		&bridge.Connector{},
		ndcconnector.WithMetricsPrefix("ndc_graphql"),
		ndcconnector.WithDefaultServiceName("ndc_graphql"),
	); err != nil {
		log.Fatal(err)
	}
}
