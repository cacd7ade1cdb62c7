package relay

import (
	"encoding/json"
	"time"
)

// Inbound and outbound message type tags. The set is closed: a frame with any
// other tag earns the sender an "Unknown message type" error reply.
const (
	TypeSubscribe        = "subscribe"
	TypeUnsubscribe      = "unsubscribe"
	TypePing             = "ping"
	TypePong             = "pong"
	TypeSpeedUpdate      = "speed_update"
	TypeDebitUpdate      = "debit_update"
	TypeTableUpdate      = "table_update"
	TypeGameStartUpdate  = "game_start_update"
	TypeGameEndUpdate    = "game_end_update"
	TypeZonesToggle      = "zones_toggle_update"
	TypeProductDestroyed = "product_destroyed"
	TypeCounter          = "counter"
	TypeZoneEntered      = "zone_entered"
	TypeHandPickup       = "hand_pickup_object"
	TypeEmergencyStop    = "emergency_stop"

	// Server-originated tags.
	TypeConnection    = "connection"
	TypeError         = "error"
	TypeProductUpdate = "product_update"
	TypeSortedObject  = "sorted_object"
	TypeUnsortedObj   = "unsorted_object"
	TypeErrorsUpdate  = "errors_update"
	TypeZonePickup    = "zone_pickup"

	TypeSubscriptionConfirmed   = "subscription_confirmed"
	TypeUnsubscriptionConfirmed = "unsubscription_confirmed"
)

// confirmedSuffix is appended to a state-update tag for the echo sent back to
// the original sender.
const confirmedSuffix = "_confirmed"

// TopicList accepts either a single topic string or a list of topics, which
// is how subscribe/unsubscribe frames arrive from the dashboard.
type TopicList []string

func (t *TopicList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*t = TopicList{single}
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*t = TopicList(many)
	return nil
}

// subscribeRequest is the payload of subscribe and unsubscribe frames.
type subscribeRequest struct {
	Data TopicList `json:"data"`
}

// SpeedUpdate carries the shared conveyor speed. Speed is a pointer so a
// missing field can be told apart from zero during validation.
type SpeedUpdate struct {
	Speed *float64 `json:"speed,omitempty"`
}

// TableUpdate carries the table height or debit value. Both fields are
// optional telemetry; only the ones present are relayed.
type TableUpdate struct {
	Debit *float64 `json:"debit,omitempty"`
	Table *float64 `json:"table,omitempty"`
}

// GameStartUpdate signals a game start. Clients historically sent either
// field name, so both are accepted and passed through.
type GameStartUpdate struct {
	IsGameStarted *bool `json:"isGameStarted,omitempty"`
	GameStart     *bool `json:"gameStart,omitempty"`
}

// GameEndUpdate signals the end of a game.
type GameEndUpdate struct {
	IsGameOver *bool `json:"isGameOver,omitempty"`
}

// ZonesToggleUpdate toggles the pickup zones on or off.
type ZonesToggleUpdate struct {
	IsZoneOn *bool `json:"isZoneOn,omitempty"`
}

// ProductDestroyed reports an object destroyed on the table.
type ProductDestroyed struct {
	ObjectName *string `json:"object_name,omitempty"`
}

// Counter carries the session counters. If more than one field is present,
// only the last one in declaration order is relayed.
type Counter struct {
	TotalEchec    *float64 `json:"TotalEchec,omitempty"`
	TotalReussite *float64 `json:"TotalReussite,omitempty"`
	TotalOublie   *float64 `json:"TotalOublie,omitempty"`
}

// ZoneEntered reports the hand entering a colored zone.
type ZoneEntered struct {
	Green  *bool `json:"green,omitempty"`
	Red    *bool `json:"red,omitempty"`
	Orange *bool `json:"orange,omitempty"`
}

// HandPickupObject reports a pickup by one hand. HandCount is a pointer so a
// missing count fails validation instead of defaulting to zero.
type HandPickupObject struct {
	Hand      string   `json:"hand,omitempty"`
	HandCount *float64 `json:"handCount,omitempty"`
}

// EmergencyStop signals the hardware emergency stop.
type EmergencyStop struct {
	IsEmergencyStop *bool `json:"isEmergencyStop,omitempty"`
}

// Server-initiated payloads used by the outbound API.

type ProductUpdate struct {
	ProductType string `json:"productType"`
}

type ObjectUpdate struct {
	ObjectType string `json:"objectType"`
}

type ErrorsUpdate struct {
	ErrorCount int `json:"errorCount"`
}

type ZonePickup struct {
	Zone string `json:"zone"`
}

// errorMessage is the uniform error reply payload.
type errorMessage struct {
	Message string `json:"message"`
}

// greeting is sent once, immediately after a connection is registered.
type greeting struct {
	Message  string `json:"message"`
	ClientID string `json:"clientId"`
}

// subscriptionAck confirms a subscription change with the resulting set.
type subscriptionAck struct {
	Subscriptions []string `json:"subscriptions"`
}

// encodeFrame assembles an outbound wire frame: the payload's JSON fields
// flattened into one object together with the type tag, a server-assigned
// timestamp, and (for relayed client events) the sender id as source.
func encodeFrame(msgType string, payload any, source string) ([]byte, error) {
	fields := make(map[string]any)

	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(raw, &fields); err != nil {
			return nil, err
		}
	}

	fields["type"] = msgType
	fields["timestamp"] = time.Now().UTC().Format(time.RFC3339)
	if source != "" {
		fields["source"] = source
	}

	return json.Marshal(fields)
}
