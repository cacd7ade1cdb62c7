package relay

import (
	"encoding/json"
	"fmt"
)

// HandleFrame processes one raw text frame from the identified sender. It
// never returns an error to its caller: parse failures, unknown tags, and
// handler failures all become a sender-only error reply, and a malformed
// frame never reaches any other connection.
func (r *Relay) HandleFrame(senderID string, frame []byte) {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(frame, &probe); err != nil {
		r.replyError(senderID, "Invalid JSON format")
		return
	}

	var err error
	switch probe.Type {
	case TypeSubscribe:
		err = r.handleSubscribe(senderID, frame)
	case TypeUnsubscribe:
		err = r.handleUnsubscribe(senderID, frame)
	case TypePing:
		r.replyTo(senderID, TypePong, nil)
	case TypeSpeedUpdate:
		err = r.handleSpeedUpdate(senderID, frame)
	case TypeDebitUpdate, TypeTableUpdate:
		err = r.handleTableUpdate(senderID, probe.Type, frame)
	case TypeGameStartUpdate:
		err = r.handleGameStart(senderID, frame)
	case TypeGameEndUpdate:
		err = r.handleGameEnd(senderID, frame)
	case TypeZonesToggle:
		err = r.handleZonesToggle(senderID, frame)
	case TypeProductDestroyed:
		err = r.handleProductDestroyed(senderID, frame)
	case TypeCounter:
		err = r.handleCounter(senderID, frame)
	case TypeZoneEntered:
		err = r.handleZoneEntered(senderID, frame)
	case TypeHandPickup:
		err = r.handleHandPickup(senderID, frame)
	case TypeEmergencyStop:
		err = r.handleEmergencyStop(senderID, frame)
	default:
		r.replyError(senderID, fmt.Sprintf("Unknown message type: %s", probe.Type))
		return
	}

	if err != nil {
		r.replyError(senderID, err.Error())
	}
}

// relayUpdate runs the shared state-update protocol: broadcast the frame to
// every other connection with the sender as source, then echo a "_confirmed"
// copy of the same payload back to the sender.
func (r *Relay) relayUpdate(senderID, msgType string, payload any) {
	r.BroadcastExcept(senderID, msgType, payload)
	r.replyTo(senderID, msgType+confirmedSuffix, payload)
}

func (r *Relay) handleSubscribe(senderID string, frame []byte) error {
	var req subscribeRequest
	if err := json.Unmarshal(frame, &req); err != nil {
		return fmt.Errorf("invalid subscribe payload: data must be a topic or list of topics")
	}
	r.Subscribe(senderID, req.Data)
	return nil
}

func (r *Relay) handleUnsubscribe(senderID string, frame []byte) error {
	var req subscribeRequest
	if err := json.Unmarshal(frame, &req); err != nil {
		return fmt.Errorf("invalid unsubscribe payload: data must be a topic or list of topics")
	}
	r.Unsubscribe(senderID, req.Data)
	return nil
}

func (r *Relay) handleSpeedUpdate(senderID string, frame []byte) error {
	var p SpeedUpdate
	if err := json.Unmarshal(frame, &p); err != nil {
		return fmt.Errorf("invalid speed_update payload")
	}
	if err := validateSpeedUpdate(p); err != nil {
		return err
	}
	r.relayUpdate(senderID, TypeSpeedUpdate, p)
	return nil
}

// handleTableUpdate serves both debit_update and table_update; the inbound
// tag is preserved on the broadcast.
func (r *Relay) handleTableUpdate(senderID, msgType string, frame []byte) error {
	var p TableUpdate
	if err := json.Unmarshal(frame, &p); err != nil {
		return fmt.Errorf("invalid %s payload", msgType)
	}
	r.relayUpdate(senderID, msgType, p)
	return nil
}

func (r *Relay) handleGameStart(senderID string, frame []byte) error {
	var p GameStartUpdate
	if err := json.Unmarshal(frame, &p); err != nil {
		return fmt.Errorf("invalid game_start_update payload")
	}
	r.relayUpdate(senderID, TypeGameStartUpdate, p)
	return nil
}

func (r *Relay) handleGameEnd(senderID string, frame []byte) error {
	var p GameEndUpdate
	if err := json.Unmarshal(frame, &p); err != nil {
		return fmt.Errorf("invalid game_end_update payload")
	}
	r.relayUpdate(senderID, TypeGameEndUpdate, p)
	return nil
}

func (r *Relay) handleZonesToggle(senderID string, frame []byte) error {
	var p ZonesToggleUpdate
	if err := json.Unmarshal(frame, &p); err != nil {
		return fmt.Errorf("invalid zones_toggle_update payload")
	}
	r.relayUpdate(senderID, TypeZonesToggle, p)
	return nil
}

func (r *Relay) handleProductDestroyed(senderID string, frame []byte) error {
	var p ProductDestroyed
	if err := json.Unmarshal(frame, &p); err != nil {
		return fmt.Errorf("invalid product_destroyed payload")
	}
	r.relayUpdate(senderID, TypeProductDestroyed, p)
	return nil
}

// handleCounter relays at most one counter field per message. When several
// are present the last one in declaration order wins; this mirrors the
// dashboard's historical behavior.
func (r *Relay) handleCounter(senderID string, frame []byte) error {
	var p Counter
	if err := json.Unmarshal(frame, &p); err != nil {
		return fmt.Errorf("invalid counter payload")
	}

	var out Counter
	switch {
	case p.TotalOublie != nil:
		out.TotalOublie = p.TotalOublie
	case p.TotalReussite != nil:
		out.TotalReussite = p.TotalReussite
	case p.TotalEchec != nil:
		out.TotalEchec = p.TotalEchec
	}

	r.relayUpdate(senderID, TypeCounter, out)
	return nil
}

func (r *Relay) handleZoneEntered(senderID string, frame []byte) error {
	var p ZoneEntered
	if err := json.Unmarshal(frame, &p); err != nil {
		return fmt.Errorf("invalid zone_entered payload")
	}
	r.relayUpdate(senderID, TypeZoneEntered, p)
	return nil
}

func (r *Relay) handleHandPickup(senderID string, frame []byte) error {
	var p HandPickupObject
	if err := json.Unmarshal(frame, &p); err != nil {
		return fmt.Errorf("invalid hand_pickup_object payload")
	}
	if err := validateHandPickup(p); err != nil {
		return err
	}
	r.relayUpdate(senderID, TypeHandPickup, p)
	return nil
}

func (r *Relay) handleEmergencyStop(senderID string, frame []byte) error {
	var p EmergencyStop
	if err := json.Unmarshal(frame, &p); err != nil {
		return fmt.Errorf("invalid emergency_stop payload")
	}
	r.relayUpdate(senderID, TypeEmergencyStop, p)
	return nil
}
