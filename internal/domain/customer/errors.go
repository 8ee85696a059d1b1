package customer

import "errors"

// Customer ドメインのエラー定義
var (
	ErrCustomerNotFound    = errors.New("顧客が見つかりません")
	ErrNameRequired        = errors.New("氏名は必須です")
	ErrNameTooLong         = errors.New("氏名は24文字以内である必要があります")
	ErrNameHasDigits       = errors.New("氏名に数字は使用できません")
	ErrInvalidGender       = errors.New("性別は F または M である必要があります")
	ErrDateOfBirthRequired = errors.New("生年月日は必須です")
	ErrAddressRequired     = errors.New("住所は必須です")
	ErrAddressTooLong      = errors.New("住所は256文字以内である必要があります")
	ErrInvalidPhone        = errors.New("電話番号は数字10桁である必要があります")
	ErrInvalidZipCode      = errors.New("郵便番号は1〜10桁の数字である必要があります")
)
