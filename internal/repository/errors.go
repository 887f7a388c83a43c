package repository

import "errors"

// Ошибки уровня репозитория. Сервисный слой переводит их в apperror.
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrProjectNotFound   = errors.New("project not found")
	ErrBidNotFound       = errors.New("bid not found")
	ErrMediaNotFound     = errors.New("media file not found")
	ErrNotProjectOwner   = errors.New("caller is not the project owner")
	ErrDuplicateBid      = errors.New("bid already placed for this project")
	ErrBidAlreadyAwarded = errors.New("bid already awarded")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrDuplicateReview   = errors.New("review already left for this project")
)
