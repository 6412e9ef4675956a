package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/attendhq/payroll-engine-go/internal/domain/payroll"
	"github.com/attendhq/payroll-engine-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.Repository {
	return &payrollRepository{db: db}
}

// ========== POLICY ==========

func (r *payrollRepository) GetPolicy(ctx context.Context, companyID string) (payroll.Policy, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, workdays_mode, fixed_workdays, weekly_off_days,
			   insurance_type, insurance_value, tax_type, tax_value,
			   created_at, updated_at
		FROM payroll_policies
		WHERE company_id = $1
	`

	var p payroll.Policy
	var offDays []int
	var insuranceType, taxType *string
	var insuranceValue, taxValue *decimal.Decimal
	err := q.QueryRow(ctx, query, companyID).Scan(
		&p.ID, &p.CompanyID, &p.WorkdaysMode, &p.FixedWorkdays, &offDays,
		&insuranceType, &insuranceValue, &taxType, &taxValue,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Policy{}, payroll.ErrPolicyNotFound
		}
		return payroll.Policy{}, fmt.Errorf("failed to get payroll policy: %w", err)
	}

	p.WeeklyOffDays = toWeekdays(offDays)
	p.Insurance = toContribution(insuranceType, insuranceValue)
	p.Tax = toContribution(taxType, taxValue)

	return p, nil
}

func (r *payrollRepository) UpsertPolicy(ctx context.Context, policy payroll.Policy) (payroll.Policy, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_policies (
			company_id, workdays_mode, fixed_workdays, weekly_off_days,
			insurance_type, insurance_value, tax_type, tax_value
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (company_id) DO UPDATE SET
			workdays_mode = EXCLUDED.workdays_mode,
			fixed_workdays = EXCLUDED.fixed_workdays,
			weekly_off_days = EXCLUDED.weekly_off_days,
			insurance_type = EXCLUDED.insurance_type,
			insurance_value = EXCLUDED.insurance_value,
			tax_type = EXCLUDED.tax_type,
			tax_value = EXCLUDED.tax_value,
			updated_at = NOW()
		RETURNING id, company_id, workdays_mode, fixed_workdays, weekly_off_days,
			insurance_type, insurance_value, tax_type, tax_value,
			created_at, updated_at
	`

	insuranceType, insuranceValue := fromContribution(policy.Insurance)
	taxType, taxValue := fromContribution(policy.Tax)

	var p payroll.Policy
	var offDays []int
	var outInsuranceType, outTaxType *string
	var outInsuranceValue, outTaxValue *decimal.Decimal
	err := q.QueryRow(ctx, query,
		policy.CompanyID, policy.WorkdaysMode, policy.FixedWorkdays, fromWeekdays(policy.WeeklyOffDays),
		insuranceType, insuranceValue, taxType, taxValue,
	).Scan(
		&p.ID, &p.CompanyID, &p.WorkdaysMode, &p.FixedWorkdays, &offDays,
		&outInsuranceType, &outInsuranceValue, &outTaxType, &outTaxValue,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return payroll.Policy{}, fmt.Errorf("failed to upsert payroll policy: %w", err)
	}

	p.WeeklyOffDays = toWeekdays(offDays)
	p.Insurance = toContribution(outInsuranceType, outInsuranceValue)
	p.Tax = toContribution(outTaxType, outTaxValue)

	return p, nil
}

// ========== BAND RULES ==========

func (r *payrollRepository) CreateBandRule(ctx context.Context, rule payroll.BandRule) (payroll.BandRule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO deduction_rules (id, company_id, kind, name, from_minutes, to_minutes, deduction_type, value)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, company_id, kind, name, from_minutes, to_minutes, deduction_type, value, created_at, updated_at
	`

	var created payroll.BandRule
	err := q.QueryRow(ctx, query,
		rule.ID, rule.CompanyID, rule.Kind, rule.Name, rule.FromMinutes, rule.ToMinutes, rule.DeductionType, rule.Value,
	).Scan(
		&created.ID, &created.CompanyID, &created.Kind, &created.Name,
		&created.FromMinutes, &created.ToMinutes, &created.DeductionType, &created.Value,
		&created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return payroll.BandRule{}, fmt.Errorf("failed to create deduction rule: %w", err)
	}

	return created, nil
}

func (r *payrollRepository) ListBandRules(ctx context.Context, companyID string, kind payroll.RuleKind) ([]payroll.BandRule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, kind, name, from_minutes, to_minutes, deduction_type, value, created_at, updated_at
		FROM deduction_rules
		WHERE company_id = $1 AND kind = $2
		ORDER BY from_minutes
	`

	rows, err := q.Query(ctx, query, companyID, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to list deduction rules: %w", err)
	}
	defer rows.Close()

	var rules []payroll.BandRule
	for rows.Next() {
		var rule payroll.BandRule
		if err := rows.Scan(
			&rule.ID, &rule.CompanyID, &rule.Kind, &rule.Name,
			&rule.FromMinutes, &rule.ToMinutes, &rule.DeductionType, &rule.Value,
			&rule.CreatedAt, &rule.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan deduction rule: %w", err)
		}
		rules = append(rules, rule)
	}

	return rules, rows.Err()
}

func (r *payrollRepository) UpdateBandRule(ctx context.Context, rule payroll.BandRule) (payroll.BandRule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE deduction_rules
		SET name = $3, from_minutes = $4, to_minutes = $5, deduction_type = $6, value = $7, updated_at = NOW()
		WHERE id = $1 AND company_id = $2
		RETURNING id, company_id, kind, name, from_minutes, to_minutes, deduction_type, value, created_at, updated_at
	`

	var updated payroll.BandRule
	err := q.QueryRow(ctx, query,
		rule.ID, rule.CompanyID, rule.Name, rule.FromMinutes, rule.ToMinutes, rule.DeductionType, rule.Value,
	).Scan(
		&updated.ID, &updated.CompanyID, &updated.Kind, &updated.Name,
		&updated.FromMinutes, &updated.ToMinutes, &updated.DeductionType, &updated.Value,
		&updated.CreatedAt, &updated.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.BandRule{}, payroll.ErrBandRuleNotFound
		}
		return payroll.BandRule{}, fmt.Errorf("failed to update deduction rule: %w", err)
	}

	return updated, nil
}

func (r *payrollRepository) DeleteBandRule(ctx context.Context, id, companyID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM deduction_rules WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete deduction rule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrBandRuleNotFound
	}

	return nil
}

// ========== PENALTIES / BONUSES ==========

func (r *payrollRepository) CreateAdjustment(ctx context.Context, adj payroll.Adjustment) (payroll.Adjustment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO adjustments (id, company_id, employee_id, type, direction, value, reason, status, date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, company_id, employee_id, type, direction, value, reason, status, date, created_at, updated_at
	`

	var created payroll.Adjustment
	err := q.QueryRow(ctx, query,
		adj.ID, adj.CompanyID, adj.EmployeeID, adj.Type, adj.Direction, adj.Value, adj.Reason, adj.Status, adj.Date,
	).Scan(
		&created.ID, &created.CompanyID, &created.EmployeeID, &created.Type, &created.Direction,
		&created.Value, &created.Reason, &created.Status, &created.Date,
		&created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return payroll.Adjustment{}, fmt.Errorf("failed to create adjustment: %w", err)
	}

	return created, nil
}

func (r *payrollRepository) ListAdjustments(ctx context.Context, companyID, employeeID string, direction payroll.Direction) ([]payroll.Adjustment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, employee_id, type, direction, value, reason, status, date, created_at, updated_at
		FROM adjustments
		WHERE company_id = $1 AND employee_id = $2 AND direction = $3
		ORDER BY date DESC
	`

	return r.scanAdjustments(ctx, q, query, companyID, employeeID, direction)
}

func (r *payrollRepository) ListApprovedAdjustments(ctx context.Context, companyID, employeeID string, direction payroll.Direction, from, to time.Time) ([]payroll.Adjustment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, employee_id, type, direction, value, reason, status, date, created_at, updated_at
		FROM adjustments
		WHERE company_id = $1 AND employee_id = $2 AND direction = $3
		  AND status = 'approved' AND date BETWEEN $4 AND $5
		ORDER BY date
	`

	return r.scanAdjustments(ctx, q, query, companyID, employeeID, direction, from, to)
}

func (r *payrollRepository) scanAdjustments(ctx context.Context, q database.Querier, query string, args ...interface{}) ([]payroll.Adjustment, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list adjustments: %w", err)
	}
	defer rows.Close()

	var items []payroll.Adjustment
	for rows.Next() {
		var item payroll.Adjustment
		if err := rows.Scan(
			&item.ID, &item.CompanyID, &item.EmployeeID, &item.Type, &item.Direction,
			&item.Value, &item.Reason, &item.Status, &item.Date,
			&item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan adjustment: %w", err)
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

func (r *payrollRepository) UpdateAdjustmentStatus(ctx context.Context, id, companyID string, status payroll.AdjustmentStatus) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE adjustments SET status = $3, updated_at = NOW()
		WHERE id = $1 AND company_id = $2
	`, id, companyID, status)
	if err != nil {
		return fmt.Errorf("failed to update adjustment status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrAdjustmentNotFound
	}

	return nil
}

func (r *payrollRepository) DeleteAdjustment(ctx context.Context, id, companyID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM adjustments WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete adjustment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrAdjustmentNotFound
	}

	return nil
}

// ========== DELAY PERMISSIONS ==========

func (r *payrollRepository) CreateDelayPermission(ctx context.Context, perm payroll.DelayPermission) (payroll.DelayPermission, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO delay_permissions (id, company_id, employee_id, date, minutes, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, company_id, employee_id, to_char(date, 'YYYY-MM-DD'), minutes, status, created_at, updated_at
	`

	var created payroll.DelayPermission
	err := q.QueryRow(ctx, query,
		perm.ID, perm.CompanyID, perm.EmployeeID, perm.Date, perm.Minutes, perm.Status,
	).Scan(
		&created.ID, &created.CompanyID, &created.EmployeeID, &created.Date,
		&created.Minutes, &created.Status, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return payroll.DelayPermission{}, fmt.Errorf("failed to create delay permission: %w", err)
	}

	return created, nil
}

func (r *payrollRepository) ListApprovedDelayPermissions(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]payroll.DelayPermission, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, employee_id, to_char(date, 'YYYY-MM-DD'), minutes, status, created_at, updated_at
		FROM delay_permissions
		WHERE company_id = $1 AND employee_id = $2
		  AND status = 'approved' AND date BETWEEN $3 AND $4
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, companyID, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list delay permissions: %w", err)
	}
	defer rows.Close()

	var perms []payroll.DelayPermission
	for rows.Next() {
		var perm payroll.DelayPermission
		if err := rows.Scan(
			&perm.ID, &perm.CompanyID, &perm.EmployeeID, &perm.Date,
			&perm.Minutes, &perm.Status, &perm.CreatedAt, &perm.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan delay permission: %w", err)
		}
		perms = append(perms, perm)
	}

	return perms, rows.Err()
}

func (r *payrollRepository) UpdateDelayPermissionStatus(ctx context.Context, id, companyID string, status payroll.AdjustmentStatus) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE delay_permissions SET status = $3, updated_at = NOW()
		WHERE id = $1 AND company_id = $2
	`, id, companyID, status)
	if err != nil {
		return fmt.Errorf("failed to update delay permission status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrDelayPermissionNotFound
	}

	return nil
}

func (r *payrollRepository) DeleteDelayPermission(ctx context.Context, id, companyID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM delay_permissions WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete delay permission: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrDelayPermissionNotFound
	}

	return nil
}

// ========== HELPERS ==========

func toWeekdays(days []int) []time.Weekday {
	result := make([]time.Weekday, 0, len(days))
	for _, d := range days {
		result = append(result, time.Weekday(d))
	}
	return result
}

func fromWeekdays(days []time.Weekday) []int {
	result := make([]int, 0, len(days))
	for _, d := range days {
		result = append(result, int(d))
	}
	return result
}

func toContribution(typ *string, value *decimal.Decimal) *payroll.ContributionPolicy {
	if typ == nil || value == nil {
		return nil
	}
	return &payroll.ContributionPolicy{Type: payroll.DeductionType(*typ), Value: *value}
}

func fromContribution(c *payroll.ContributionPolicy) (*string, *decimal.Decimal) {
	if c == nil {
		return nil, nil
	}
	typ := string(c.Type)
	return &typ, &c.Value
}
