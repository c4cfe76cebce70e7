// internal/categorizer/rules.go
package categorizer

// Rule maps a keyword set to a category/subcategory pair. The table below is
// scanned in order and the first matching (rule, keyword) wins, so overlapping
// keywords resolve deterministically: keep new rules at the end unless they
// must shadow an existing one.
type Rule struct {
	Category    string
	Subcategory string
	Keywords    []string
}

var Rules = []Rule{
	{"Transporte", "Uber/99", []string{"uber", "99", "cabify", "in drive", "indrive"}},
	{"Transporte", "Combustível", []string{"posto", "combustivel", "gasolina", "etanol", "shell", "petrobras", "ipiranga"}},
	{"Transporte", "Transporte Público", []string{"metro", "metrô", "trem", "onibus", "ônibus", "cptm", "bilhete"}},
	{"Transporte", "Estacionamento", []string{"estacionamento", "valet", "parking", "zona azul"}},
	{"Alimentação", "Restaurantes", []string{"restaurante", "bar", "lanchonete", "ifood", "i food", "rappi", "ubereats"}},
	{"Alimentação", "Supermercado", []string{"mercado", "supermercado", "atacadao", "assai", "carrefour", "pao de acucar", "pão de açucar", "Zona Sul"}},
	{"Alimentação", "Padaria", []string{"padaria", "nema", "pao", "pão", "confeitaria"}},
	{"Moradia", "Aluguel", []string{"aluguel", "locacao", "locação"}},
	{"Moradia", "Condomínio", []string{"condominio", "condomínio"}},
	{"Moradia", "Água", []string{"agua", "água", "saneamento", "sabesp"}},
	{"Moradia", "Luz", []string{"energia", "luz", "enel", "cpfl", "light"}},
	{"Moradia", "Gás", []string{"gas", "gás", "ultragaz", "liquigas", "liquigás"}},
	{"Moradia", "Internet", []string{"internet", "banda larga", "fibra", "vivo", "claro", "tim"}},
	{"Saúde", "Farmácia", []string{"farmacia", "farmácia", "drogaria", "droga", "drogasil"}},
	{"Saúde", "Consultas", []string{"consulta", "clinica", "clínica", "exame"}},
	{"Saúde", "Plano de Saúde", []string{"plano de saude", "plano de saúde", "amil", "bradesco saude"}},
	{"Saúde", "Academia", []string{"academia", "smart fit", "bluefit"}},
	{"Educação", "Cursos", []string{"curso", "udemy", "alura", "rocketseat"}},
	{"Educação", "Livros", []string{"livraria", "livro", "amazon livros", "estante virtual"}},
	{"Educação", "Mensalidade", []string{"mensalidade", "escola", "faculdade"}},
	{"Lazer", "Streaming", []string{"netflix", "spotify", "amazon prime", "prime video", "disney", "hbo"}},
	{"Lazer", "Cinema", []string{"cinema", "cine", "ingresso"}},
	{"Lazer", "Viagens", []string{"hotel", "airbnb", "booking", "latam", "azul", "gol"}},
	{"Compras", "Roupas", []string{"roupa", "moda", "renner", "cea", "c&a", "riachuelo"}},
	{"Compras", "Eletrônicos", []string{"eletronico", "eletrônico", "magalu", "kabum", "mercado livre"}},
	{"Compras", "Casa", []string{"casa", "leroy", "telha", "material de construcao", "construção"}},
	{"Compras", "Presentes", []string{"presente", "gift", "floricultura"}},
	{"Serviços", "Assinaturas", []string{"assinatura", "netflix", "spotify", "prime video", "icloud", "google one"}},
	{"Serviços", "Telefone", []string{"telefonia", "celular", "vivo", "claro", "tim", "oi"}},
	{"Serviços", "Seguros", []string{"seguro", "apolice", "apólice"}},
	{"Investimentos", "Ações", []string{"corretora", "acoes", "ações", "home broker", "btg", "xp"}},
	{"Investimentos", "Renda Fixa", []string{"cdb", "lci", "lca", "tesouro", "renda fixa"}},
	{"Investimentos", "Crypto", []string{"bitcoin", "btc", "crypto", "ethereum", "binance"}},
	{"Investimentos", "Previdência", []string{"previdencia", "previdência"}},
	{"Outros", "Transferências", []string{"transferencia", "transferência", "pix", "ted", "doc"}},
	{"Outros", "Saques", []string{"saque", "caixa 24h"}},
	{"Outros", "Taxas Bancárias", []string{"tarifa", "anuidade", "taxa", "juros"}},
}
