package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/havenmed/records-api/internal/model"
)

func TestMatrix(t *testing.T) {
	allRoles := []model.Role{model.RoleHIM, model.RoleNurse, model.RoleDoctor, model.RolePharmacy}
	allOps := []model.Operation{model.OpCreate, model.OpRead, model.OpList, model.OpUpdate, model.OpDelete}

	// expected[resource][op] lists the roles that may act
	expected := map[model.Resource]map[model.Operation][]model.Role{
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
	}
	clinical := []model.Resource{
		model.ResourceMedicalHistory,
		model.ResourceDiagnosisAdmission,
		model.ResourceVitalSigns,
		model.ResourcePatientNote,
	}
	for _, res := range clinical {
		expected[res] = map[model.Operation][]model.Role{
			model.OpCreate: {model.RoleNurse, model.RoleDoctor},
			model.OpRead:   {model.RoleNurse, model.RoleDoctor},
			model.OpList:   {model.RoleNurse, model.RoleDoctor},
			model.OpUpdate: {model.RoleNurse, model.RoleDoctor},
			model.OpDelete: {model.RoleNurse, model.RoleDoctor},
		}
	}

	for resource, ops := range expected {
		for _, op := range allOps {
			for _, role := range allRoles {
				want := false
				for _, allowed := range ops[op] {
					if allowed == role {
						want = true
					}
				}
				got := Allowed(role, resource, op)
				assert.Equal(t, want, got, "%s %s %s", role, op, resource)
			}
		}
	}
}

func TestDoctorReadsFolderDetailButCannotList(t *testing.T) {
	assert.True(t, Allowed(model.RoleDoctor, model.ResourceCaseFolder, model.OpRead))
	assert.False(t, Allowed(model.RoleDoctor, model.ResourceCaseFolder, model.OpList))
	assert.True(t, Allowed(model.RoleHIM, model.ResourceCaseFolder, model.OpList))
}

func TestPharmacyDeniedEverywhere(t *testing.T) {
	resources := []model.Resource{
		model.ResourcePatient,
		model.ResourceCaseFolder,
		model.ResourceMedicalHistory,
		model.ResourceDiagnosisAdmission,
		model.ResourceVitalSigns,
		model.ResourcePatientNote,
	}
	ops := []model.Operation{model.OpCreate, model.OpRead, model.OpList, model.OpUpdate, model.OpDelete}

	for _, res := range resources {
		for _, op := range ops {
			assert.False(t, Allowed(model.RolePharmacy, res, op))
		}
	}
}

func TestUnknownResourceOrOperationDenies(t *testing.T) {
	assert.False(t, Allowed(model.RoleHIM, model.Resource("prescription"), model.OpRead))
	assert.False(t, Allowed(model.RoleDoctor, model.ResourcePatient, model.Operation("approve")))
	assert.False(t, Allowed(model.Role("janitor"), model.ResourcePatient, model.OpRead))
}
