package mqtt

import "fmt"

// topicPrefix is the root of every toolkit topic.
const topicPrefix = "toolkit"

// Topics builds the toolkit's MQTT topic strings.
//
// The zero value is ready to use:
//
//	mqtt.Topics{}.AuditCompleted("192.168.1.10")
//	// "toolkit/audit/192.168.1.10"
type Topics struct{}

// SystemStatus is the retained online/offline status topic.
func (Topics) SystemStatus() string {
	return topicPrefix + "/system/status"
}

// AuditCompleted is the per-unit topic for completed comparison runs.
// unitIP is the IP address of the audited unit.
func (Topics) AuditCompleted(unitIP string) string {
	return fmt.Sprintf("%s/audit/%s", topicPrefix, unitIP)
}
