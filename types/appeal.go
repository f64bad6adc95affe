package types

const (
	AppealTypeAppeal        = "appeal"
	AppealTypeCertification = "certification"
	AppealTypeReport        = "report"
)

// Appeal is an ephemeral request relayed to the staff server. It is never
// persisted beyond the relay.
type Appeal struct {
	RequestType string `json:"request_type" validate:"required,oneof=appeal certification report" msg:"Request type must be one of appeal, certification or report"`
	Appeal      string `json:"appeal" validate:"required,min=7,max=4000" msg:"Appeal text must be between 7 and 4000 characters"`
}
