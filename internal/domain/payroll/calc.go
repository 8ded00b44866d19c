package payroll

import "hrmsconsole/internal/platform/money"

// ComputeNetSalary returns basicPay + bonus - deductions rounded to cents.
// Empty or non-numeric inputs count as zero.
func ComputeNetSalary(basicPay, bonus, deductions string) money.Amount {
	return NetSalary(money.Parse(basicPay), money.Parse(bonus), money.Parse(deductions))
}

func NetSalary(basicPay, bonus, deductions money.Amount) money.Amount {
	return basicPay.Add(bonus).Sub(deductions).Round()
}
