package util

import (
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// SetResponse builds the standard response envelope
func SetResponse(data interface{}, status int, message string) map[string]interface{} {
	response := make(map[string]interface{})
	response["data"] = nil
	if data != nil {
		response["data"] = data
	}
	response["status"] = status
	response["message"] = message
	return response
}

// RecoverGoroutinePanic recovers a panicking goroutine and reports it on errChan when given
func RecoverGoroutinePanic(errChan chan<- error) {
	if r := recover(); r != nil {
		logrus.Errorf("recovered from go routine panic: %v", r)
		if errChan != nil {
			errChan <- errors.Errorf("panic: %v", r)
		}
	}
}

// PrettyPrint prints the last argument as indented json, preceded by the others
func PrettyPrint(data ...interface{}) error {
	if len(data) == 0 {
		return nil
	}
	byteData, err := json.MarshalIndent(data[len(data)-1], "", " ")
	if err != nil {
		return err
	}
	fmt.Println()
	if len(data) > 1 {
		fmt.Println(data[:len(data)-1]...)
	}
	fmt.Println(string(byteData))
	fmt.Println()
	return nil
}
