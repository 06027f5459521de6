package schemas

// Envelope is the uniform response wrapper used by every endpoint. The
// status field echoes the transport-level status code as "ok" or "error";
// data carries the payload, or an empty object on failure.
type Envelope struct {
	Status string      `json:"status"`
	Msg    string      `json:"msg"`
	Data   interface{} `json:"data"`
}

func OkEnvelope(msg string, data interface{}) Envelope {
	return Envelope{Status: "ok", Msg: msg, Data: data}
}

func ErrorEnvelope(msg string) Envelope {
	return Envelope{Status: "error", Msg: msg, Data: struct{}{}}
}
