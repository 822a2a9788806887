package controllers

import "errors"

// Ошибки.
var (
	ErrRecordNotFound     = errors.New("shortcode not found")      // Код не найден
	ErrLinkExpired        = errors.New("link expired")             // Срок жизни ссылки истек
	ErrDuplicateShortcode = errors.New("shortcode already exists") // Код уже занят
	ErrInvalidRequestBody = errors.New("invalid request body")     // Некорректное тело запроса
	ErrInternal           = errors.New("internal error")           // Прочая ошибка
)
