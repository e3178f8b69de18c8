// Package wizard 实现客户端签约向导：条款 → 身份验证 → 信息核对 → 签署 → 支付。
package wizard

import (
	"fmt"
	"unicode/utf8"

	"github.com/pkg/errors"

	"jhpcic/internal/service/order/domain"
)

// Step 是向导当前所处的步骤
type Step string

const (
	StepTerms     Step = "terms"
	StepVerify    Step = "verify"
	StepCheck     Step = "check"
	StepSign      Step = "sign"
	StepPay       Step = "pay"
	StepCompleted Step = "completed"
)

// MobileLength 手机号输入长度，达到该长度才允许继续
const MobileLength = 11

var (
	ErrMobileMismatch = errors.Wrap(domain.ErrValidation, "mobile mismatch")
	ErrNotSigned      = errors.Wrap(domain.ErrValidation, "请先签名")
	ErrMobileLength   = errors.Wrap(domain.ErrValidation, "请输入11位手机号")
)

// MobileMismatchError 在验证失败时携带预留手机号，直接展示给客户
type MobileMismatchError struct {
	Expected string
}

func (e *MobileMismatchError) Error() string {
	return fmt.Sprintf("验证失败：手机号不匹配 (请输入 %s)", e.Expected)
}

func (e *MobileMismatchError) Unwrap() error { return ErrMobileMismatch }

// Wizard 持有一条已解析的记录以及向导的本地状态。
// 签名与验证结果只保存在内存中，不回写存储。
type Wizard struct {
	step        Step
	data        *domain.InsuranceData
	mobileInput string
	pad         SignaturePad
}

// New 以已解析的记录创建向导。已支付的记录直接进入完成页。
func New(data *domain.InsuranceData) *Wizard {
	w := &Wizard{step: StepTerms, data: data.Clone()}
	if w.data.IsPaid() {
		w.step = StepCompleted
	}
	return w
}

// Step 返回当前步骤
func (w *Wizard) Step() Step { return w.step }

// Data 返回记录副本
func (w *Wizard) Data() *domain.InsuranceData { return w.data.Clone() }

func (w *Wizard) expect(step Step) error {
	if w.step != step {
		return errors.Wrapf(domain.ErrInvalidTransition, "expected step %s, current step is %s", step, w.step)
	}
	return nil
}

// AcceptTerms 阅读并同意条款，terms → verify
func (w *Wizard) AcceptTerms() error {
	if err := w.expect(StepTerms); err != nil {
		return err
	}
	w.step = StepVerify
	return nil
}

// SetMobileInput 原样保存手机号输入，长度不对时 Verify 拒绝提交
func (w *Wizard) SetMobileInput(s string) {
	w.mobileInput = s
}

// MobileInput 返回当前输入
func (w *Wizard) MobileInput() string { return w.mobileInput }

// CanVerify 输入满 11 位时才可提交
func (w *Wizard) CanVerify() bool {
	return utf8.RuneCountInString(w.mobileInput) == MobileLength
}

// Verify 比对输入与投保人预留手机号，verify → check
func (w *Wizard) Verify() error {
	if err := w.expect(StepVerify); err != nil {
		return err
	}
	if !w.CanVerify() {
		return ErrMobileLength
	}
	if w.mobileInput != w.data.Proposer.Mobile {
		return &MobileMismatchError{Expected: w.data.Proposer.Mobile}
	}
	w.step = StepCheck
	return nil
}

// ConfirmDetails 确认信息无误，check → sign
func (w *Wizard) ConfirmDetails() error {
	if err := w.expect(StepCheck); err != nil {
		return err
	}
	w.step = StepSign
	return nil
}

// Pad 返回签名板，只在签署步骤接受输入
func (w *Wizard) Pad() *SignaturePad { return &w.pad }

// PointerDown 开始一笔
func (w *Wizard) PointerDown(p Point) {
	if w.step == StepSign {
		w.pad.Begin(p)
	}
}

// PointerMove 延长当前笔画
func (w *Wizard) PointerMove(p Point) {
	if w.step == StepSign {
		w.pad.Extend(p)
	}
}

// PointerUp 结束当前笔画
func (w *Wizard) PointerUp() { w.pad.End() }

// PointerLeave 与 PointerUp 相同
func (w *Wizard) PointerLeave() { w.pad.End() }

// ClearSignature 清空签名板
func (w *Wizard) ClearSignature() { w.pad.Clear() }

// SubmitSignature 提交签名，sign → pay。没有任何笔画时停留在签署步骤。
func (w *Wizard) SubmitSignature() error {
	if err := w.expect(StepSign); err != nil {
		return err
	}
	if !w.pad.HasSigned() {
		return ErrNotSigned
	}
	w.step = StepPay
	return nil
}

// Back 返回按钮目前不做任何事
func (w *Wizard) Back() {}

// MaskedMobile 返回 138****8000 形式的提示号码
func (w *Wizard) MaskedMobile() string {
	return MaskMobile(w.data.Proposer.Mobile)
}

// MaskMobile 保留前三位与后四位
func MaskMobile(mobile string) string {
	r := []rune(mobile)
	if len(r) < 7 {
		return mobile
	}
	return string(r[:3]) + "****" + string(r[len(r)-4:])
}

// DrawStroke 回放一整笔，供不逐点上报的客户端使用
func (w *Wizard) DrawStroke(points []Point) {
	if len(points) == 0 {
		return
	}
	w.PointerDown(points[0])
	for _, p := range points[1:] {
		w.PointerMove(p)
	}
	w.PointerUp()
}

// View 是向导当前状态的只读快照，供页面或终端渲染
type View struct {
	Step         Step                  `json:"step"`
	OrderID      string                `json:"orderId"`
	MaskedMobile string                `json:"maskedMobile"`
	MobileInput  string                `json:"mobileInput"`
	CanVerify    bool                  `json:"canVerify"`
	HasSigned    bool                  `json:"hasSigned"`
	Strokes      int                   `json:"strokes"`
	Premium      string                `json:"premium"`
	Record       *domain.InsuranceData `json:"record,omitempty"`
	Payment      *domain.Payment       `json:"payment,omitempty"`
}

// View 生成快照。核对之后的步骤才附带完整记录，支付步骤附带支付引用。
func (w *Wizard) View() View {
	v := View{
		Step:         w.step,
		OrderID:      w.data.OrderID,
		MaskedMobile: w.MaskedMobile(),
		MobileInput:  w.mobileInput,
		CanVerify:    w.CanVerify(),
		HasSigned:    w.pad.HasSigned(),
		Strokes:      len(w.pad.strokes),
		Premium:      w.data.Project.Premium,
	}
	switch w.step {
	case StepCheck, StepSign, StepPay, StepCompleted:
		v.Record = w.Data()
	}
	if w.step == StepPay {
		p := w.data.Payment
		v.Payment = &p
	}
	return v
}
