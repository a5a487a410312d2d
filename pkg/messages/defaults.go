package messages

// Built-in message kinds.
const (
	KeyEmpty           = "empty"
	KeyNumber          = "number"
	KeySize            = "size"
	KeyConfirm         = "confirm"
	KeyInvalid         = "invalid"
	KeyMaxSizeFile     = "maxSizeFile"
	KeyInvalidFileType = "invalidFileType"
	KeyMinLength       = "minLength"
	KeyMaxLength       = "maxLength"
)

// Defaults returns a fresh copy of the built-in English templates.
func Defaults() map[string]string {
	return map[string]string{
		KeyEmpty:           "This {{input}} field is empty.",
		KeyNumber:          "This {{input}} field does not match a number.",
		KeySize:            "The size of the {{input}} field does not match the size required.",
		KeyConfirm:         "The two {{input}} entered do not match.",
		KeyInvalid:         "This {{input}} field is not validated.",
		KeyMaxSizeFile:     "The file size for {{input}} exceeds the maximum allowed size of {{max}}.",
		KeyInvalidFileType: "The file type for {{input}} is invalid. Allowed types are: {{types}}.",
		KeyMinLength:       "The {{input}} field must have at least {{min}} characters.",
		KeyMaxLength:       "The {{input}} field cannot exceed {{max}} characters.",
	}
}
