package create_booking

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Пространство имён для детерминированной генерации кодов верификации
var verificationNamespace = uuid.MustParse("7a5cdd9e-2b60-4f46-9c11-3f4bd4a0e1ab")

// verificationCode выводит код для сканирования на стойке из ID бронирования.
// Код детерминирован: повторная генерация для того же бронирования дает тот же
// результат, отдельного хранения сида не требуется
func verificationCode(bookingID int64) string {
	id := uuid.NewSHA1(verificationNamespace, []byte(fmt.Sprintf("booking:%d", bookingID)))
	return strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")[:8])
}
