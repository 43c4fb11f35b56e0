package customerror

import "fmt"

type CustomError struct {
	Module   string
	Endpoint string
	Message  string
}

var ErrTimedOut = fmt.Errorf("TimedOut")

var ErrWrongCredentials = fmt.Errorf("WrongCredentials")

var ErrUserAlreadyExists = fmt.Errorf("UserAlreadyExists")

var ErrJwtInvalid = fmt.Errorf("JWTInvalid")

var ErrJwtVersionIncorrect = fmt.Errorf("JwtVersionIncorrect")

var ErrAttemptsEnded = fmt.Errorf("AttemptsEnded")

var ErrResetHashInvalid = fmt.Errorf("ResetHashInvalid")

var ErrNotLandlord = fmt.Errorf("NotLandlord")

var ErrNotStudent = fmt.Errorf("NotStudent")

var ErrAlreadyReviewed = fmt.Errorf("AlreadyReviewed")

var ErrInvalidRating = fmt.Errorf("InvalidRating")

var ErrRoomMismatch = fmt.Errorf("RoomMismatch")

func (customError CustomError) Error() string {
	return fmt.Sprintf("ERROR|%s|%s:%s", customError.Endpoint, customError.Module, customError.Message)
}

func (customError *CustomError) AppendModule(module string) {
	customError.Module = module + "." + customError.Module
}

func NewError(module, endpoint, message string) error {
	return CustomError{
		Module:   module,
		Endpoint: endpoint,
		Message:  message,
	}
}
