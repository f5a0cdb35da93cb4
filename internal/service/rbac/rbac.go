package rbac

import "github.com/havenmed/records-api/internal/model"

// matrix is the static access control table. HIM owns patient and case
// folder records; nurses and doctors own the clinical records inside a
// folder; doctors can additionally read case folder detail. Pharmacy
// currently has no record access.
var matrix = map[model.Resource]map[model.Operation][]model.Role{
	model.ResourcePatient: {
		model.OpCreate: {model.RoleHIM},
		model.OpRead:   {model.RoleHIM},
		model.OpList:   {model.RoleHIM},
		model.OpUpdate: {model.RoleHIM},
		model.OpDelete: {model.RoleHIM},
	},
	model.ResourceCaseFolder: {
		model.OpCreate: {model.RoleHIM},
		model.OpRead:   {model.RoleHIM, model.RoleDoctor},
		model.OpList:   {model.RoleHIM},
		model.OpUpdate: {model.RoleHIM},
		model.OpDelete: {model.RoleHIM},
	},
	model.ResourceMedicalHistory: {
		model.OpCreate: {model.RoleNurse, model.RoleDoctor},
		model.OpRead:   {model.RoleNurse, model.RoleDoctor},
		model.OpList:   {model.RoleNurse, model.RoleDoctor},
		model.OpUpdate: {model.RoleNurse, model.RoleDoctor},
		model.OpDelete: {model.RoleNurse, model.RoleDoctor},
	},
	model.ResourceDiagnosisAdmission: {
		model.OpCreate: {model.RoleNurse, model.RoleDoctor},
		model.OpRead:   {model.RoleNurse, model.RoleDoctor},
		model.OpList:   {model.RoleNurse, model.RoleDoctor},
		model.OpUpdate: {model.RoleNurse, model.RoleDoctor},
		model.OpDelete: {model.RoleNurse, model.RoleDoctor},
	},
	model.ResourceVitalSigns: {
		model.OpCreate: {model.RoleNurse, model.RoleDoctor},
		model.OpRead:   {model.RoleNurse, model.RoleDoctor},
		model.OpList:   {model.RoleNurse, model.RoleDoctor},
		model.OpUpdate: {model.RoleNurse, model.RoleDoctor},
		model.OpDelete: {model.RoleNurse, model.RoleDoctor},
	},
	model.ResourcePatientNote: {
		model.OpCreate: {model.RoleNurse, model.RoleDoctor},
		model.OpRead:   {model.RoleNurse, model.RoleDoctor},
		model.OpList:   {model.RoleNurse, model.RoleDoctor},
		model.OpUpdate: {model.RoleNurse, model.RoleDoctor},
		model.OpDelete: {model.RoleNurse, model.RoleDoctor},
	},
}

// Allowed reports whether the role may perform the operation on the
// resource type. Unknown resources or operations deny.
func Allowed(role model.Role, resource model.Resource, op model.Operation) bool {
	ops, ok := matrix[resource]
	if !ok {
		return false
	}
	for _, allowed := range ops[op] {
		if allowed == role {
			return true
		}
	}
	return false
}
