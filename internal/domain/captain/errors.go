package captain

import "errors"

// Captain ドメインのエラー定義
var (
	ErrCaptainNotFound      = errors.New("船長が見つかりません")
	ErrCaptainAlreadyExists = errors.New("同じIDの船長が既に存在します")
	ErrInvalidID            = errors.New("船長IDは0以上である必要があります")
	ErrFullNameRequired     = errors.New("氏名は必須です")
	ErrFullNameTooLong      = errors.New("氏名は128文字以内である必要があります")
	ErrFullNameHasDigits    = errors.New("氏名に数字は使用できません")
	ErrNationalityRequired  = errors.New("国籍は必須です")
	ErrNationalityTooLong   = errors.New("国籍は24文字以内である必要があります")
	ErrNationalityHasDigits = errors.New("国籍に数字は使用できません")
)
