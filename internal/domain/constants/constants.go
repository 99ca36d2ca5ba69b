// Package constants defines string constants shared across layers.
package constants

// Pub/Sub providers accepted by config pubsub.provider.
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)

// HelloWorldContent is the message body of every demo interaction.
const HelloWorldContent = "Hello World"

// HelloWorldCommand is the only command accepted by the CLI demo endpoint.
const HelloWorldCommand = "hello-world"
