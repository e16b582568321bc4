package telegram

import (
	"strconv"
	"strings"
)

// Callback action constants.
const (
	actionExercise   = "ex"
	actionAssessment = "asmt"
	actionSettings   = "settings"
	actionWords      = "words"
	actionReset      = "reset"
)

// Exercise sub-actions.
const (
	exerciseStart = "start"
)

// Assessment sub-actions.
const (
	assessmentStart = "start"
)

// Settings sub-actions.
const (
	settingsMenu        = "menu"
	settingsWordsPerDay = "words_per_day"
	settingsHour        = "hour"
	settingsReminders   = "reminders"
	reminderToggle      = "toggle"
)

const (
	resetConfirm = "confirm"
	resetCancel  = "cancel"
)

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	if len(parts) == 0 {
		return callbackData{Raw: data}
	}

	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// buildExerciseAnswerCallback builds callback data for answering an
// exercise question.
func buildExerciseAnswerCallback(questionIndex, answerIndex int) string {
	return callbackData{
		Action: actionExercise,
		Params: []string{strconv.Itoa(questionIndex), strconv.Itoa(answerIndex)},
	}.encode()
}

// buildExerciseStartCallback builds callback data for starting an exercise.
func buildExerciseStartCallback() string {
	return callbackData{
		Action: actionExercise,
		Params: []string{exerciseStart},
	}.encode()
}

// buildAssessmentAnswerCallback builds callback data for answering a
// placement question.
func buildAssessmentAnswerCallback(questionIndex, answerIndex int) string {
	return callbackData{
		Action: actionAssessment,
		Params: []string{strconv.Itoa(questionIndex), strconv.Itoa(answerIndex)},
	}.encode()
}

// buildAssessmentStartCallback builds callback data for starting the
// placement assessment.
func buildAssessmentStartCallback() string {
	return callbackData{
		Action: actionAssessment,
		Params: []string{assessmentStart},
	}.encode()
}

// buildSettingsCallback builds callback data for settings-related actions.
func buildSettingsCallback(subAction string, value ...string) string {
	params := []string{subAction}
	params = append(params, value...)
	return callbackData{
		Action: actionSettings,
		Params: params,
	}.encode()
}

// buildWordsCallback builds callback data for requesting the daily batch.
func buildWordsCallback() string {
	return actionWords
}

func buildResetConfirmCallback() string {
	return callbackData{Action: actionReset, Params: []string{resetConfirm}}.encode()
}

func buildResetCancelCallback() string {
	return callbackData{Action: actionReset, Params: []string{resetCancel}}.encode()
}
