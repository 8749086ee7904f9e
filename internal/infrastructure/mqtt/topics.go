package mqtt

import "fmt"

// Topic prefixes for the solwatch MQTT namespace.
//
// The live feed uses the flat scheme: solwatch/live/{subject}. Dashboards
// subscribe to solwatch/live/# for everything, or to a single field topic
// for one gauge.
const (
	// TopicPrefixLive is the base for live telemetry topics.
	TopicPrefixLive = "solwatch/live"

	// TopicPrefixSystem is the base for system topics.
	TopicPrefixSystem = "solwatch/system"
)

// Topics provides builders for solwatch MQTT topics.
// Using these helpers ensures consistent topic naming across the codebase.
//
//	topics := mqtt.Topics{}
//	topic := topics.LiveField("P_AC")
//	// Returns: "solwatch/live/field/P_AC"
type Topics struct{}

// LiveReading returns the topic carrying each complete reading as JSON.
//
// Example: solwatch/live/reading
func (Topics) LiveReading() string {
	return fmt.Sprintf("%s/reading", TopicPrefixLive)
}

// LiveField returns the per-field topic carrying a single raw value.
//
// Example: solwatch/live/field/P_AC
func (Topics) LiveField(field string) string {
	return fmt.Sprintf("%s/field/%s", TopicPrefixLive, field)
}

// SystemStatus returns the collector online/offline status topic.
//
// Example: solwatch/system/status
func (Topics) SystemStatus() string {
	return fmt.Sprintf("%s/status", TopicPrefixSystem)
}
