// Package errors содержит общие доменные ошибки приложения.
//
// Эти ошибки используются в service и repository слоях сервера,
// маппятся на HTTP-статусы в api слое и обратно распознаются клиентом.
package errors

import "errors"

var (
	// Входные данные невалидны (пустые поля, неправильный формат и т.п.)
	ErrInvalidInput = errors.New("invalid input")
	// Получена непредвиденная ошибка
	ErrInternal = errors.New("internal error")
	// Полученные JSON данные с ошибками
	ErrBadJSON = errors.New("bad json")
	// Ресурс уже существует (например email уже занят)
	ErrAlreadyExists = errors.New("already exists")
	// Ресурс не найден
	ErrNotFound = errors.New("not found")
	// неожидаемая ошибка
	ErrUnexpectedError = errors.New("unexpected error")
)

// только для клиента
var (
	// удаление не прошло, запись могла быть уже удалена
	ErrDeleteFailed = errors.New("deletion failed, record may already be removed")
	// создание пользователя не прошло
	ErrCreateFailed = errors.New("creation failed")
	// не удалось получить список пользователей
	ErrFetchFailed = errors.New("fetch failed")
	// сервер вернул запись без id
	ErrEmptyID = errors.New("user id cannot be empty")
)
