package main

type userError struct {
	msg  string
	hint string
}

func (e *userError) Error() string { return e.msg }
func (e *userError) Hint() string  { return e.hint }

func missingValue(key string) *userError {
	return &userError{
		msg:  key + " must be specified",
		hint: "pass --" + key + ", set LOGFETCH_" + envName(key) + " or add it to ~/.logfetch.yaml",
	}
}
